// Package player spawns the first-person rig: a physics-driven body that
// carries yaw and a child camera that carries pitch.
package player

import (
	"fmt"

	"firstperson/internal/controller"
	"firstperson/internal/engine"
	"firstperson/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
)

const (
	PlayerTag = "player"
	CameraTag = "camera"
)

// Options describe the spawned rig.
type Options struct {
	Spawn         rl.Vector3 `yaml:"spawn"`
	CameraOffset  rl.Vector3 `yaml:"camera_offset"`
	HalfHeight    float32    `yaml:"half_height"`
	Radius        float32    `yaml:"radius"`
	LinearDamping float32    `yaml:"linear_damping"`
	GravityScale  float32    `yaml:"gravity_scale"`
}

func DefaultOptions() Options {
	return Options{
		Spawn:         rl.Vector3{X: 0, Y: 1, Z: 0},
		CameraOffset:  rl.Vector3{X: 0, Y: 1.5, Z: 0},
		HalfHeight:    0.5,
		Radius:        1.0,
		LinearDamping: 0.5,
		GravityScale:  2.0,
	}
}

func (o Options) Validate() error {
	if o.HalfHeight <= 0 || o.Radius <= 0 {
		return fmt.Errorf("player capsule must have positive size, got half_height=%v radius=%v", o.HalfHeight, o.Radius)
	}
	if o.LinearDamping < 0 {
		return fmt.Errorf("linear_damping must not be negative, got %v", o.LinearDamping)
	}
	return nil
}

// Player is the body component. Velocity lives in the physics world; yaw
// lives on the game object's transform.
type Player struct {
	engine.BaseComponent
	ID   uuid.UUID
	Body physics.Body
}

func (p *Player) Velocity() rl.Vector3 {
	return p.Body.Velocity()
}

func (p *Player) SetVelocity(v rl.Vector3) {
	p.Body.SetVelocity(v)
}

// RotateY yaws the body about world up.
func (p *Player) RotateY(angle float32) {
	if g := p.GetGameObject(); g != nil {
		g.Transform.RotateY(angle)
	}
}

func (p *Player) Position() rl.Vector3 {
	return p.Body.Position()
}

// SyncTransform copies the simulated position onto the game object.
func (p *Player) SyncTransform() {
	if g := p.GetGameObject(); g != nil && p.Body.Valid() {
		g.Transform.Position = p.Body.Position()
	}
}

// Camera is the pitch component on the child game object. Pitch always
// equals the local X rotation applied to the transform.
type Camera struct {
	engine.BaseComponent
	pitch float32
}

func (c *Camera) Pitch() float32 {
	return c.pitch
}

func (c *Camera) SetPitch(pitch float32) {
	c.pitch = pitch
}

func (c *Camera) RotateLocalX(angle float32) {
	if g := c.GetGameObject(); g != nil {
		g.Transform.RotateLocalX(angle)
	}
}

func (c *Camera) Forward() rl.Vector3 {
	g := c.GetGameObject()
	if g == nil {
		return rl.Vector3{}
	}
	return g.WorldTransform().Forward()
}

func (c *Camera) Right() rl.Vector3 {
	g := c.GetGameObject()
	if g == nil {
		return rl.Vector3{}
	}
	return g.WorldTransform().Right()
}

// Eye returns the camera's world position.
func (c *Camera) Eye() rl.Vector3 {
	g := c.GetGameObject()
	if g == nil {
		return rl.Vector3{}
	}
	return g.WorldPosition()
}

// Spawn creates the player body and its camera, registers both with the
// scene and adds the body to the physics world.
func Spawn(scene *engine.Scene, world *physics.World, opts Options) (*Player, *Camera, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, fmt.Errorf("spawn player: %w", err)
	}

	body := engine.NewGameObject("Player")
	body.Tags = []string{PlayerTag}
	body.Transform.Position = opts.Spawn

	player := &Player{
		ID: uuid.New(),
		Body: world.AddBody(physics.BodyDesc{
			Position:     opts.Spawn,
			HalfExtents:  physics.CapsuleExtents(opts.HalfHeight, opts.Radius),
			Damping:      opts.LinearDamping,
			GravityScale: opts.GravityScale,
		}),
	}
	body.AddComponent(player)

	eye := engine.NewGameObject("Camera")
	eye.Tags = []string{CameraTag}
	eye.Transform.Position = opts.CameraOffset
	camera := &Camera{}
	eye.AddComponent(camera)
	body.AddChild(eye)

	scene.AddGameObject(body)
	return player, camera, nil
}

// Resolve looks up the player and camera in the scene. Missing pieces are
// left nil in the returned rig so the controller skips the tick.
func Resolve(scene *engine.Scene) controller.Rig {
	var rig controller.Rig
	if scene == nil {
		return rig
	}
	if p := engine.GetComponent[*Player](scene.FindOneByTag(PlayerTag)); p != nil {
		rig.Body = p
	}
	if c := engine.GetComponent[*Camera](scene.FindOneByTag(CameraTag)); c != nil {
		rig.Pivot = c
	}
	return rig
}
