package game

import (
	"fmt"
	"time"

	"firstperson/internal/config"
	"firstperson/internal/controller"
	"firstperson/internal/engine"
	"firstperson/internal/input"
	"firstperson/internal/physics"
	"firstperson/internal/player"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

type Game struct {
	Config     *config.Config
	Scene      *engine.Scene
	Physics    *physics.World
	Controller *controller.Controller
	Player     *player.Player
	Camera     *player.Camera

	rig controller.Rig
	log *zap.Logger

	// Smoothed seconds per frame, fed by Step.
	frameTime float64

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

// Stats is a read-only view of the player for diagnostics.
type Stats struct {
	Position rl.Vector3
	// Components below StatsEpsilon read as zero.
	Velocity rl.Vector3
	Pitch    float32
	Ticks    uint64
	FPS      float64
	UpdateMs float64
	DrawMs   float64
}

// StatsEpsilon hides resting jitter in reported velocity.
const StatsEpsilon = 1e-4

const frameSmoothing = 0.1

func New(cfg *config.Config, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}

	world := physics.NewWorld(log)
	world.Gravity = rl.Vector3{Y: cfg.Physics.Gravity}
	fe := cfg.Physics.FloorHalfExtents
	world.AddStatic(rl.Vector3{}, rl.Vector3{X: fe[0], Y: fe[1], Z: fe[2]})

	scene := engine.NewScene("Main")
	p, cam, err := player.Spawn(scene, world, cfg.Player)
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}

	g := &Game{
		Config:     cfg,
		Scene:      scene,
		Physics:    world,
		Controller: controller.New(cfg.Controller, log),
		Player:     p,
		Camera:     cam,
		log:        log.With(zap.Stringer("player", p.ID)),
	}
	// Resolved once; the controller receives explicit handles every tick.
	g.rig = player.Resolve(scene)

	g.Controller.Jumped.AddListener(func(e controller.JumpEvent) {
		g.log.Debug("player jumped", zap.Uint64("tick", e.Tick), zap.Float32("speed", e.Speed))
	})

	g.log.Info("game created",
		zap.Float32("base_speed", cfg.Controller.BaseSpeed),
		zap.Float32("sensitivity", cfg.Controller.Sensitivity))
	return g, nil
}

// Step runs one tick: look and movement first, then physics, then the
// simulated position is copied back onto the scene graph.
func (g *Game) Step(snap controller.Snapshot, dt float32) {
	g.Controller.Tick(g.rig, snap, dt)
	g.Physics.Step(dt)
	g.Player.SyncTransform()

	if dt > 0 {
		if g.frameTime == 0 {
			g.frameTime = float64(dt)
		} else {
			g.frameTime += (float64(dt) - g.frameTime) * frameSmoothing
		}
	}
}

func (g *Game) Stats() Stats {
	s := Stats{
		Position: g.Player.Position(),
		Velocity: squash(g.Player.Velocity()),
		Pitch:    g.Camera.Pitch(),
		Ticks:    g.Controller.Ticks(),
		UpdateMs: g.updateMs,
		DrawMs:   g.drawMs,
	}
	if g.frameTime > 0 {
		s.FPS = 1 / g.frameTime
	}
	return s
}

func squash(v rl.Vector3) rl.Vector3 {
	if v.X > -StatsEpsilon && v.X < StatsEpsilon {
		v.X = 0
	}
	if v.Y > -StatsEpsilon && v.Y < StatsEpsilon {
		v.Y = 0
	}
	if v.Z > -StatsEpsilon && v.Z < StatsEpsilon {
		v.Z = 0
	}
	return v
}

// Camera3D builds the render camera from the camera game object.
func (g *Game) Camera3D() rl.Camera3D {
	eye := g.Camera.Eye()
	return rl.Camera3D{
		Position:   eye,
		Target:     rl.Vector3Add(eye, g.Camera.Forward()),
		Up:         engine.WorldUp,
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}

func (g *Game) Run() {
	w := g.Config.Window
	if w.MSAA {
		rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowHighdpi)
	} else {
		rl.SetConfigFlags(rl.FlagWindowHighdpi)
	}
	rl.InitWindow(w.Width, w.Height, w.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(w.TargetFPS)
	rl.DisableCursor()

	g.log.Info("window opened", zap.Int32("width", w.Width), zap.Int32("height", w.Height))
	src := input.Raylib{}

	for !rl.WindowShouldClose() {
		updateStart := time.Now()
		g.Step(input.Poll(src, input.DefaultBindings), rl.GetFrameTime())
		g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0

		g.Draw()
	}

	s := g.Stats()
	g.log.Info("window closed",
		zap.Uint64("ticks", s.Ticks),
		zap.Float64("fps", s.FPS),
		zap.Float64("update_ms", s.UpdateMs),
		zap.Float64("draw_ms", s.DrawMs))
}

func (g *Game) Draw() {
	camera := g.Camera3D()
	fe := g.Config.Physics.FloorHalfExtents

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(135, 170, 210, 255))

	drawStart := time.Now()
	rl.BeginMode3D(camera)
	rl.DrawCube(rl.Vector3{}, fe[0]*2, fe[1]*2, fe[2]*2, rl.NewColor(150, 120, 80, 255))
	rl.DrawGrid(int32(fe[0]), 2)
	rl.EndMode3D()
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	rl.DrawText("WASD to move, Shift to sprint, Space to jump, Mouse to look", 10, 10, 20, rl.DarkGray)
	s := g.Stats()
	rl.DrawText(fmt.Sprintf("FPS %.0f  update %.2fms  draw %.2fms", s.FPS, s.UpdateMs, s.DrawMs), 10, 35, 20, rl.DarkGray)
	rl.DrawText(fmt.Sprintf("vel %.2f %.2f %.2f", s.Velocity.X, s.Velocity.Y, s.Velocity.Z), 10, 60, 20, rl.DarkGray)
	rl.EndDrawing()
}
