package hazard

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/beatdodge/internal/core"
	"github.com/vovakirdan/beatdodge/internal/engine"
)

var testWorld = core.V(1600, 900)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func approxVec(a, b core.Vec2) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y)
}

func newAcc() *engine.Accumulator {
	return engine.NewAccumulator(0, testWorld, rand.New(rand.NewSource(1)))
}

// step advances o by dt beats and returns the accumulator it wrote to.
func step(o engine.Obstacle, dt float64) *engine.Accumulator {
	acc := newAcc()
	o.Update(acc, 1.0/60, dt)
	return acc
}

func playerAt(pos core.Vec2) engine.Player {
	return engine.Player{Pos: pos, Radius: 5}
}

func TestGrowLaserLifecycle(t *testing.T) {
	l := NewGrowLaser(core.V(0, 100), core.V(1600, 100), 20, 2, 4, core.V(7, 0))
	p := playerAt(core.V(800, 100))

	jerks := 0
	for i := 1; i <= 12; i++ {
		acc := step(l, 0.5)
		now := float64(i) * 0.5
		if acc.JerkTotal() != (core.Vec2{}) {
			jerks++
			if !approx(now, 2) {
				t.Errorf("jerk fired at t=%v, expected t=2", now)
			}
		}
		if now < 2 && l.Collides(p) {
			t.Errorf("t=%v: Collides() = true during warning", now)
		}
		if now >= 2.5 && now < 5.75 && !l.Collides(p) {
			t.Errorf("t=%v: Collides() = false, expected true", now)
		}
		if got, expected := l.ShouldKill(), now >= 6; got != expected {
			t.Errorf("t=%v: ShouldKill() = %v, expected %v", now, got, expected)
		}
	}
	if jerks != 1 {
		t.Errorf("jerk fired %d times, expected 1", jerks)
	}
}

func TestGrowLaserThickness(t *testing.T) {
	tests := []struct {
		t, expected float64
	}{
		{1, 20},
		{2, 0},
		{2.125, 10},
		{3, 20},
		{5.875, 10},
	}

	for _, tc := range tests {
		l := NewGrowLaser(core.V(0, 0), core.V(10, 0), 20, 2, 4, core.Vec2{})
		l.t = tc.t
		if got := l.Thick(); !approx(got, tc.expected) {
			t.Errorf("Thick() at t=%v = %v, expected %v", tc.t, got, tc.expected)
		}
	}
}

func TestSlamLaserSlam(t *testing.T) {
	tests := []struct {
		t, expected float64
	}{
		{0.5, 0.05},
		{2, 1},
		{4, 0.75},
	}

	for _, tc := range tests {
		l := NewSlamLaser(core.V(0, 0), core.V(100, 0), 10, 1, 4, 0.1, core.Vec2{}, 0)
		l.t = tc.t
		if got := l.Slam(); !approx(got, tc.expected) {
			t.Errorf("Slam() at t=%v = %v, expected %v", tc.t, got, tc.expected)
		}
	}
}

func TestSlamLaserFiresOnce(t *testing.T) {
	l := NewSlamLaser(core.V(0, 0), core.V(100, 0), 10, 1, 4, 0.1, core.V(3, 0), 5)
	fired := 0
	for i := 0; i < 8; i++ {
		acc := step(l, 0.5)
		if acc.ShakeTotal() != 0 {
			fired++
			if acc.JerkTotal() != core.V(3, 0) {
				t.Errorf("JerkTotal() = %v, expected (3, 0)", acc.JerkTotal())
			}
		}
	}
	if fired != 1 {
		t.Errorf("shake fired %d times, expected 1", fired)
	}
}

func TestSlamLaserReach(t *testing.T) {
	l := NewSlamLaser(core.V(0, 0), core.V(100, 0), 10, 1, 4, 0.1, core.Vec2{}, 0)
	step(l, 0.5)
	if l.Collides(playerAt(core.V(2, 0))) {
		t.Error("Collides() = true during warning")
	}
	step(l, 1)
	if !l.Collides(playerAt(core.V(90, 0))) {
		t.Error("Collides() = false near the tip after the slam")
	}
	if !approxVec(l.Tip(), core.V(100, 0)) {
		t.Errorf("Tip() = %v, expected (100, 0)", l.Tip())
	}
}

func TestPeriodicCatchUp(t *testing.T) {
	count := 0
	var steps []int
	p := NewPeriodic(10, 0.1, engine.ActionFunc(func(_ *engine.Accumulator, args engine.Args) {
		count++
		steps = append(steps, args.Step)
	}))

	step(p, 0.45)
	if count != 4 {
		t.Fatalf("action ran %d times, expected 4", count)
	}
	for i, s := range steps {
		if s != i {
			t.Errorf("steps[%d] = %d, expected %d", i, s, i)
		}
	}
	if !approx(p.Remainder(), 0.05) {
		t.Errorf("Remainder() = %v, expected 0.05", p.Remainder())
	}
	if p.ShouldKill() {
		t.Error("ShouldKill() = true before the last step")
	}
}

func TestPeriodicStopsAtMax(t *testing.T) {
	count := 0
	p := NewPeriodic(3, 0.25, engine.ActionFunc(func(*engine.Accumulator, engine.Args) {
		count++
	}))
	step(p, 2)
	if count != 3 {
		t.Errorf("action ran %d times, expected 3", count)
	}
	if !p.ShouldKill() {
		t.Error("ShouldKill() = false after the last step")
	}
	if p.Collides(playerAt(core.Vec2{})) {
		t.Error("Periodic should never collide")
	}
}

func TestLinearTrail(t *testing.T) {
	p := NewPeriodic(3, 1, Linear(2, 1, 0.25, core.V(100, 100), core.V(50, 0), core.V(20, 20), 0))
	acc := step(p, 3)
	spawned := acc.Spawned()
	if len(spawned) != 3 {
		t.Fatalf("spawned %d rects, expected 3", len(spawned))
	}
	for i, h := range spawned {
		r := h.Obstacle.(*RotatableRect)
		expected := core.V(100+50*float64(i), 100)
		if !approxVec(r.Center, expected) {
			t.Errorf("rect %d center = %v, expected %v", i, r.Center, expected)
		}
	}
}

func TestBombBurst(t *testing.T) {
	start, target := core.V(1600, 100), core.V(1500, 200)
	b := NewBomb(start, target, 1, 4, 10, 3, nil)

	step(b, 0.5)
	if b.ShouldKill() {
		t.Fatal("ShouldKill() = true before the fuse ends")
	}
	step(b, 0.5)
	if !b.ShouldKill() {
		t.Fatal("ShouldKill() = false at the end of the fuse")
	}

	expectedPos := start.Sub(target).DivScalar(21).Add(target)
	if !approxVec(b.Pos(), expectedPos) {
		t.Errorf("Pos() = %v, expected %v", b.Pos(), expectedPos)
	}

	acc := newAcc()
	b.Kill(acc)
	spawned := acc.Spawned()
	if len(spawned) != 4 {
		t.Fatalf("burst spawned %d pellets, expected 4", len(spawned))
	}
	dirs := []core.Vec2{core.V(10, 0), core.V(0, 10), core.V(-10, 0), core.V(0, -10)}
	for i, h := range spawned {
		p := h.Obstacle.(*Pellet)
		if !approxVec(p.Vel, dirs[i]) {
			t.Errorf("pellet %d Vel = %v, expected %v", i, p.Vel, dirs[i])
		}
		if !approxVec(p.Pos, expectedPos) {
			t.Errorf("pellet %d Pos = %v, expected %v", i, p.Pos, expectedPos)
		}
		if p.Rad != 3 {
			t.Errorf("pellet %d Rad = %v, expected 3", i, p.Rad)
		}
	}
}

func TestBombWithoutLife(t *testing.T) {
	b := NewBomb(core.V(10, 10), core.V(20, 20), 0, 4, 10, 3, nil)
	step(b, 0.02)
	if r := b.Radius(); r != 0 {
		t.Errorf("Radius() = %v, expected 0", r)
	}
	if !approxVec(b.Pos(), core.V(10, 10)) {
		t.Errorf("Pos() = %v, expected the start", b.Pos())
	}
	if b.Collides(engine.Player{Pos: core.V(800, 450), Radius: 5}) {
		t.Error("Collides() = true for a player far away")
	}
	if !b.ShouldKill() {
		t.Error("ShouldKill() = false, expected an immediate burst")
	}
}

func TestBombSideSpawner(t *testing.T) {
	acc := newAcc()
	BombSideSpawner{Pellets: 6, PelletSpeed: 100, PelletRad: 4, Life: 2}.Run(acc, engine.NewArgs(0))
	spawned := acc.Spawned()
	if len(spawned) != 1 {
		t.Fatalf("spawned %d obstacles, expected 1", len(spawned))
	}
	b := spawned[0].Obstacle.(*Bomb)
	if b.Start.X != 1600 || b.Target.X != 1500 {
		t.Errorf("Start.X, Target.X = %v, %v, expected 1600, 1500", b.Start.X, b.Target.X)
	}
	if b.Start.Y < 0 || b.Start.Y >= 900 || b.Target.Y < 0 || b.Target.Y >= 900 {
		t.Errorf("heights %v, %v outside the playfield", b.Start.Y, b.Target.Y)
	}
	if b.Spawner == nil {
		t.Error("Spawner should default to PelletSpawner")
	}
}

func TestPelletThroughSession(t *testing.T) {
	s := engine.NewSession(engine.DefaultSessionConfig())
	s.SetTempo(60, 1)
	var moving, leaving *Pellet
	s.Schedule(0, engine.ActionFunc(func(acc *engine.Accumulator, _ engine.Args) {
		moving = NewPellet(core.V(0, 0), core.V(100, 0), 3)
		leaving = NewPellet(core.V(0, 10), core.V(-100, 0), 3)
		acc.Spawn(moving)
		acc.Spawn(leaving)
	}))
	s.Sort()

	s.Update(0, 1.0/60, core.NewInputFrame())
	if moving == nil || len(s.Obstacles()) != 2 {
		t.Fatalf("%d obstacles after beat 0, expected the 2 scheduled pellets", len(s.Obstacles()))
	}
	if !approxVec(moving.Pos, core.V(0, 0)) {
		t.Errorf("Pos = %v after its spawn frame, expected (0, 0)", moving.Pos)
	}

	res := s.Update(1, 1, core.NewInputFrame())
	if res.Hit {
		t.Error("pellets far from the player should not hit")
	}
	if !approxVec(moving.Pos, core.V(100, 0)) {
		t.Errorf("Pos = %v, expected (100, 0)", moving.Pos)
	}
	if n := len(s.Obstacles()); n != 1 {
		t.Errorf("%d obstacles left, expected 1", n)
	}
}

func TestPelletBounds(t *testing.T) {
	tests := []struct {
		name     string
		pos      core.Vec2
		expected bool
	}{
		{"inside", core.V(10, 10), false},
		{"on the inflated edge", core.V(-3, 0), false},
		{"left", core.V(-3.5, 0), true},
		{"below", core.V(10, 904), true},
		{"right", core.V(1604, 10), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPellet(tc.pos, core.Vec2{}, 3)
			step(p, 0)
			if got := p.ShouldKill(); got != tc.expected {
				t.Errorf("ShouldKill() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRotatableRectSize(t *testing.T) {
	tests := []struct {
		t        float64
		oversize bool
		expected float64
	}{
		{0.5, true, 10},
		{1.25, true, 15},
		{1.25, false, 10},
		{3, true, 10},
		{4.75, false, 5},
	}

	for _, tc := range tests {
		r := NewRotatableRect(core.V(100, 100), core.V(10, 10), 0, 1, 4, 0.5)
		r.t = tc.t
		if got := r.SizeAt(tc.oversize); !approx(got.X, tc.expected) {
			t.Errorf("SizeAt(%v) at t=%v = %v, expected %v", tc.oversize, tc.t, got.X, tc.expected)
		}
	}
}

func TestRotatableRectWarning(t *testing.T) {
	r := NewRotatableRect(core.V(100, 100), core.V(10, 10), 0, 1, 4, 0.5)
	p := playerAt(core.V(100, 100))
	step(r, 0.5)
	if r.Collides(p) {
		t.Error("Collides() = true during warning")
	}
	step(r, 1.5)
	if !r.Collides(p) {
		t.Error("Collides() = false after warning")
	}
	step(r, 3)
	if !r.ShouldKill() {
		t.Error("ShouldKill() = false after show time")
	}
}

func TestRotatableRectDrawMatchesCollision(t *testing.T) {
	r := NewRotatableRect(core.V(100, 100), core.V(100, 10), math.Pi/2, 0, 10, 0)
	scr := core.NewScreen(200, 200)
	r.Draw(scr, core.ColorRed, core.Vec2{})

	tests := []struct {
		x, y int
	}{
		{100, 140},
		{140, 100},
		{100, 60},
	}
	for _, tc := range tests {
		center := scr.CellCenter(tc.x, tc.y)
		painted := scr.GetCell(tc.x, tc.y).Rune == core.FillRune
		hit := r.Collides(engine.Player{Pos: center, Radius: 0.01})
		if painted != hit {
			t.Errorf("cell (%d, %d): painted %v, collides %v", tc.x, tc.y, painted, hit)
		}
	}
	if !r.Collides(playerAt(core.V(100, 140))) {
		t.Error("a quarter-turned rect should reach 40 units down")
	}
	if r.Collides(playerAt(core.V(140, 100))) {
		t.Error("a quarter-turned rect should not reach 40 units right")
	}
}

func TestRotatingRectSpins(t *testing.T) {
	r := NewRotatingRect(core.V(100, 100), core.V(100, 10), 0, 0.25, 1, 8, 0)
	p := playerAt(core.V(100, 140))
	step(r, 1)
	if r.Collides(p) {
		t.Error("Collides() = true before the rect turns")
	}
	step(r, 1)
	if !approx(r.RotAt(), math.Pi/2) {
		t.Errorf("RotAt() = %v, expected %v", r.RotAt(), math.Pi/2)
	}
	if !r.Collides(p) {
		t.Error("Collides() = false after a quarter turn")
	}
}

func TestSmokeEvents(t *testing.T) {
	s := NewSmoke().With(Pulse(2), PelletRing(0, 8, 10, 3, 0))
	if s.Pending() != 2 {
		t.Fatalf("Pending() = %d, expected 2", s.Pending())
	}

	acc := step(s, 0.5)
	if len(acc.Spawned()) != 0 {
		t.Error("events fired during warning")
	}
	acc = step(s, 0.5)
	if n := len(acc.Spawned()); n != 8 {
		t.Errorf("pellet ring spawned %d, expected 8", n)
	}

	acc = step(s, 2)
	if acc.ShakeTotal() != 10 {
		t.Errorf("ShakeTotal() = %v, expected 10", acc.ShakeTotal())
	}
	if !approx(s.Size(), 40) {
		t.Errorf("Size() after a pulse = %v, expected 40", s.Size())
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, expected 0", s.Pending())
	}
}

func TestSmokeSpinner(t *testing.T) {
	s := NewSmoke().With(Spinner(0, 4, 10, 2, 0, 2))
	total := 0
	for i := 0; i < 10; i++ {
		total += len(step(s, 0.5).Spawned())
	}
	if total != 4 {
		t.Errorf("spinner spawned %d pellets, expected 4", total)
	}
}

func TestSmokeLifetime(t *testing.T) {
	s := NewSmoke()
	p := playerAt(testWorld.Scale(0.5))
	step(s, 0.5)
	if s.Collides(p) {
		t.Error("Collides() = true during warning")
	}
	step(s, 32.5)
	if s.ShouldKill() {
		t.Error("ShouldKill() = true at the end of show time")
	}
	step(s, 0.01)
	if !s.ShouldKill() {
		t.Error("ShouldKill() = false past show time")
	}
}

func TestSmokeTrackStaysNearCenter(t *testing.T) {
	s := NewSmoke()
	step(s, 0)
	center := testWorld.Scale(0.5)
	for i := 0; i < 20; i++ {
		pos := s.TrackPos(float64(i) * 0.37)
		if d := pos.Dist(center); d > s.Amp*2 {
			t.Errorf("TrackPos(%v) is %v from center, expected at most %v", float64(i)*0.37, d, s.Amp*2)
		}
	}
}

func TestParseLifeRule(t *testing.T) {
	tests := []struct {
		in      string
		birth   []int
		survive []int
		wantErr bool
	}{
		{"B3/S23", []int{3}, []int{2, 3}, false},
		{"b36/s237", []int{3, 6}, []int{2, 3, 7}, false},
		{"B/S", nil, nil, false},
		{"B9/S23", nil, nil, true},
		{"S23/B3", nil, nil, true},
		{"conway", nil, nil, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			rule, err := ParseLifeRule(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Errorf("ParseLifeRule(%q) should fail", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLifeRule(%q) error: %v", tc.in, err)
			}
			var birth, survive [9]bool
			for _, n := range tc.birth {
				birth[n] = true
			}
			for _, n := range tc.survive {
				survive[n] = true
			}
			if rule.Birth != birth || rule.Survive != survive {
				t.Errorf("ParseLifeRule(%q) = %v, expected birth %v survive %v", tc.in, rule, birth, survive)
			}
		})
	}
}

func TestLifeGridBlinker(t *testing.T) {
	g := NewLifeGrid(5, 5)
	for x := 1; x <= 3; x++ {
		g.Set(x, 2, true)
	}
	g.Step()
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			expected := x == 2 && y >= 1 && y <= 3
			if g.Alive(x, y) != expected {
				t.Errorf("Alive(%d, %d) = %v, expected %v", x, y, g.Alive(x, y), expected)
			}
		}
	}
	if g.Alive(-1, 0) || g.Alive(5, 5) {
		t.Error("cells outside the grid should be dead")
	}
}

func TestLifeGridTicks(t *testing.T) {
	g := NewLifeGrid(5, 5)
	g.MaxTicks = 2
	for x := 1; x <= 3; x++ {
		g.Set(x, 2, true)
	}

	acc := step(g, 0.1)
	spawned := acc.Spawned()
	if len(spawned) != 3 {
		t.Fatalf("first tick spawned %d rects, expected 3", len(spawned))
	}
	r := spawned[0].Obstacle.(*RotatableRect)
	if !approxVec(r.Center, core.V(800, 270)) {
		t.Errorf("first rect center = %v, expected (800, 270)", r.Center)
	}
	if !approxVec(r.Size, core.V(320, 180)) {
		t.Errorf("first rect size = %v, expected (320, 180)", r.Size)
	}
	if r.Warning != g.FirstWarning {
		t.Errorf("first rect warning = %v, expected %v", r.Warning, g.FirstWarning)
	}

	if n := len(step(g, 0.1).Spawned()); n != 0 {
		t.Errorf("spawned %d rects between ticks, expected 0", n)
	}
	acc = step(g, 2)
	if n := len(acc.Spawned()); n != 3 {
		t.Errorf("second tick spawned %d rects, expected 3", n)
	}
	if r := acc.Spawned()[0].Obstacle.(*RotatableRect); r.Warning != g.Warning {
		t.Errorf("later rect warning = %v, expected %v", r.Warning, g.Warning)
	}
	if !g.ShouldKill() {
		t.Error("ShouldKill() = false after MaxTicks")
	}
}

func TestLifeGridPopulate(t *testing.T) {
	g := NewLifeGrid(32, 18)
	g.Populate(50, rand.New(rand.NewSource(3)))
	if n := g.Count(); n == 0 || n > 50 {
		t.Errorf("Count() = %d, expected between 1 and 50", n)
	}
}

func TestLifeGridLiteral(t *testing.T) {
	g := &LifeGrid{Width: 4, Height: 4, Rule: Conway}
	g.Set(1, 1, true)
	g.Set(1, 2, true)
	g.Set(2, 1, true)
	g.Set(2, 2, true)
	g.Step()
	if n := g.Count(); n != 4 || !g.Alive(2, 2) {
		t.Errorf("Count() = %d after a step, expected the 2x2 block to stay", n)
	}
}

func TestSpinningArc(t *testing.T) {
	center := core.V(400, 400)
	a := NewSpinningArc(center, 100, 120, 0, math.Pi, 0.5, 1, 4)
	lower := playerAt(center.Add(core.V(0, 110)))
	upper := playerAt(center.Add(core.V(0, -110)))

	step(a, 0.5)
	if a.Collides(lower) {
		t.Error("Collides() = true during warning")
	}
	step(a, 0.5)
	if !a.Collides(lower) || a.Collides(upper) {
		t.Errorf("at activation: lower %v, upper %v, expected true, false", a.Collides(lower), a.Collides(upper))
	}
	step(a, 1)
	if a.Collides(lower) || !a.Collides(upper) {
		t.Errorf("after half a turn: lower %v, upper %v, expected false, true", a.Collides(lower), a.Collides(upper))
	}
	if a.Collides(playerAt(center)) {
		t.Error("the hole should be safe")
	}
}

func TestEaseRemapsTime(t *testing.T) {
	p := NewPellet(core.V(0, 0), core.V(1, 0), 1)
	e := NewEase(p, func(t float64) float64 { return t * t })
	step(e, 1)
	step(e, 1)
	if !approxVec(p.Pos, core.V(4, 0)) {
		t.Errorf("Pos = %v, expected (4, 0)", p.Pos)
	}
}

func TestEaseForwardsKill(t *testing.T) {
	b := NewBomb(core.V(0, 0), core.V(0, 0), 1, 3, 1, 1, nil)
	e := NewEase(b, func(t float64) float64 { return t })
	step(e, 1)
	if !e.ShouldKill() {
		t.Fatal("ShouldKill() should follow the inner bomb")
	}
	acc := newAcc()
	e.Kill(acc)
	if n := len(acc.Spawned()); n != 3 {
		t.Errorf("Kill spawned %d pellets, expected 3", n)
	}
}

func TestMultiSpawnerClones(t *testing.T) {
	tmpl := NewPellet(core.V(1, 1), core.V(1, 0), 2)
	spawner := MultiSpawner{tmpl}
	acc := newAcc()
	spawner.Run(acc, engine.NewArgs(0))
	spawner.Clone().Run(acc, engine.NewArgs(0))

	spawned := acc.Spawned()
	if len(spawned) != 2 {
		t.Fatalf("spawned %d, expected 2", len(spawned))
	}
	for i, h := range spawned {
		if h.Obstacle == engine.Obstacle(tmpl) {
			t.Errorf("spawned[%d] is the template itself", i)
		}
	}
	if spawned[0].Obstacle == spawned[1].Obstacle {
		t.Error("both spawns share one obstacle")
	}
}

func TestLaserSpawners(t *testing.T) {
	acc := newAcc()
	HorLaserSpawner{Thickness: 20, Warning: 1, Show: 2, Jerk: 5}.Run(acc, engine.NewArgs(0))
	VertLaserSpawner{Thickness: 20, Warning: 1, Show: 2, Jerk: 5}.Run(acc, engine.NewArgs(0))

	spawned := acc.Spawned()
	if len(spawned) != 2 {
		t.Fatalf("spawned %d lasers, expected 2", len(spawned))
	}
	h := spawned[0].Obstacle.(*GrowLaser)
	if h.Start.X != -100 || h.End.X != 1700 || h.Start.Y != h.End.Y {
		t.Errorf("horizontal laser %v -> %v", h.Start, h.End)
	}
	if h.Jerk.Y != 0 || math.Abs(h.Jerk.X) > 5 {
		t.Errorf("horizontal jerk = %v", h.Jerk)
	}
	v := spawned[1].Obstacle.(*GrowLaser)
	if v.Start.Y != -100 || v.End.Y != 1000 || v.Start.X != v.End.X {
		t.Errorf("vertical laser %v -> %v", v.Start, v.End)
	}

	acc = newAcc()
	for i := 0; i < 10; i++ {
		LaserSpawner{Thickness: 20, Warning: 1, Show: 2}.Run(acc, engine.NewArgs(0))
	}
	if n := len(acc.Spawned()); n != 10 {
		t.Errorf("LaserSpawner spawned %d, expected 10", n)
	}
}
