package entity

import (
	"fmt"

	"github.com/milk9111/reacher/ecs"
	"github.com/milk9111/reacher/prefabs"
)

// SceneSpec gathers the prefabs that make up the playable scene.
type SceneSpec struct {
	Player *prefabs.PlayerSpec
	Hand   *prefabs.HandSpec
	Camera *prefabs.CameraSpec
	Floor  *prefabs.FloorSpec
}

func LoadSceneSpec() (SceneSpec, error) {
	var spec SceneSpec
	var err error
	if spec.Player, err = prefabs.LoadPlayerSpec(); err != nil {
		return SceneSpec{}, err
	}
	if spec.Hand, err = prefabs.LoadHandSpec(); err != nil {
		return SceneSpec{}, err
	}
	if spec.Camera, err = prefabs.LoadCameraSpec(); err != nil {
		return SceneSpec{}, err
	}
	if spec.Floor, err = prefabs.LoadFloorSpec(); err != nil {
		return SceneSpec{}, err
	}
	return spec, nil
}

type Scene struct {
	Player ecs.Entity
	Hand   ecs.Entity
	Camera ecs.Entity
	Floor  ecs.Entity
}

func BuildScene(w *ecs.World, spec SceneSpec) (Scene, error) {
	var s Scene
	var err error
	if s.Floor, err = NewFloor(w, spec.Floor); err != nil {
		return Scene{}, fmt.Errorf("scene: %w", err)
	}
	if s.Player, err = NewPlayer(w, spec.Player); err != nil {
		return Scene{}, fmt.Errorf("scene: %w", err)
	}
	if s.Hand, err = NewHand(w, s.Player, spec.Hand); err != nil {
		return Scene{}, fmt.Errorf("scene: %w", err)
	}
	if s.Camera, err = NewCamera(w, spec.Camera); err != nil {
		return Scene{}, fmt.Errorf("scene: %w", err)
	}
	return s, nil
}
