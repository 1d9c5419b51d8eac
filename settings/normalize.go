package settings

import "github.com/samber/lo"

// Normalize repairs values that would break a logic invariant: negative delays and counts are raised to zero,
// non-positive rates fall back to their default and inverted min/max ranges are swapped. Normalising an already
// normal document leaves it unchanged.
func (c *Config) Normalize() {
	def := Default()

	r := &c.Render
	if r.Pacing != PacingEngine && r.Pacing != PacingTimer {
		r.Pacing = def.Render.Pacing
	}
	if r.FrameRate <= 0 {
		r.FrameRate = def.Render.FrameRate
	}
	r.FrameDelay = max(r.FrameDelay, 0)
	r.HFoV = lo.Clamp(r.HFoV, 10, 170)
	if r.C2P.Mode != ClickToPhotonImmediate && r.C2P.Mode != ClickToPhotonDelayed {
		r.C2P.Mode = def.Render.C2P.Mode
	}
	r.C2P.VertPos = lo.Clamp(r.C2P.VertPos, 0, 1)
	r.C2P.Width = lo.Clamp(r.C2P.Width, 0, 1)
	r.C2P.Height = lo.Clamp(r.C2P.Height, 0, 1)

	s := &c.Scene
	s.Width = max(s.Width, 1)
	s.Depth = max(s.Depth, 1)
	s.Walls.Height = max(s.Walls.Height, 0)
	s.Boxes.Count = max(s.Boxes.Count, 0)
	s.Boxes.Width = max(s.Boxes.Width, 0)
	s.Boxes.Depth = max(s.Boxes.Depth, 0)
	s.Boxes.MinHeight = max(s.Boxes.MinHeight, 0)
	s.Boxes.MaxHeight = max(s.Boxes.MaxHeight, 0)
	orderRange(&s.Boxes.MinHeight, &s.Boxes.MaxHeight)
	s.Boxes.DistanceRange = lo.Clamp(s.Boxes.DistanceRange, 0, min(s.Width, s.Depth)/2)
	s.Boxes.MinDistanceToPlayer = lo.Clamp(s.Boxes.MinDistanceToPlayer, 0, s.Boxes.DistanceRange)
	s.Boxes.ColorScaleRange = lo.Clamp(s.Boxes.ColorScaleRange, 0, 1)

	p := &c.Player
	p.Speed = max(p.Speed, 0)
	p.MouseSensitivity = max(p.MouseSensitivity, 0)
	if p.Height <= 0 {
		p.Height = def.Player.Height
	}
	p.JumpHeight = max(p.JumpHeight, 0)
	p.CollisionDistance = max(p.CollisionDistance, 0)

	re := &c.Reticle
	re.Size = max(re.Size, 0)
	re.Gap = max(re.Gap, 0)
	re.Thickness = max(re.Thickness, 0)
	re.ExpandedScale = max(re.ExpandedScale, 0)
	re.ShrinkTime = max(re.ShrinkTime, 0)

	t := &c.Targets
	t.Count = max(t.Count, 0)
	t.MinSize = max(t.MinSize, 0)
	t.MaxSize = max(t.MaxSize, 0)
	orderRange(&t.MinSize, &t.MaxSize)
	t.MinSpeed = max(t.MinSpeed, 0)
	t.MaxSpeed = max(t.MaxSpeed, 0)
	orderRange(&t.MinSpeed, &t.MaxSpeed)
	t.MinChangeTime = max(t.MinChangeTime, 0)
	t.MaxChangeTime = max(t.MaxChangeTime, 0)
	orderRange(&t.MinChangeTime, &t.MaxChangeTime)
	t.MinSpawnDistance = max(t.MinSpawnDistance, 0)
	t.MaxSpawnDistance = max(t.MaxSpawnDistance, 0)
	orderRange(&t.MinSpawnDistance, &t.MaxSpawnDistance)
	t.SpawnAzimRangeDeg = lo.Clamp(t.SpawnAzimRangeDeg, 0, 180)
	t.SpawnElevRangeDeg = lo.Clamp(t.SpawnElevRangeDeg, 0, 90)
	t.CollisionDistance = max(t.CollisionDistance, 0)
	t.Reference.Size = max(t.Reference.Size, 0)
	t.Reference.Distance = max(t.Reference.Distance, 0)
	t.Particles.Size = max(t.Particles.Size, 0)
	t.Particles.HitCount = max(t.Particles.HitCount, 0)
	t.Particles.DestroyCount = max(t.Particles.DestroyCount, 0)

	w := &c.Weapon
	w.FirePeriod = max(w.FirePeriod, 0)
	w.DamagePerSecond = max(w.DamagePerSecond, 0)
	w.ScopeFov = lo.Clamp(w.ScopeFov, 1, 170)
	w.FireSpread = lo.Clamp(w.FireSpread, 0, 90)
}

func orderRange(low, high *float64) {
	if *low > *high {
		*low, *high = *high, *low
	}
}
