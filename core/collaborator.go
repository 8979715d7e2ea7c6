package core

import (
	"context"

	"github.com/aerialfoundry/skyfleet-simulator/model"
)

// AssetLoader is the rendering collaborator that produces visual
// handles. Loading may fail; the spawn manager substitutes
// model.PlaceholderHandle and continues, so implementations should
// return promptly (an async loader can hand back its own placeholder
// and swap the real asset in later).
type AssetLoader interface {
	LoadVisualAsset(ctx context.Context, name string) (model.VisualHandle, error)
}

// ViewerSource answers the "where is the viewer" query that spawning,
// despawning and terrain streaming are all relative to.
type ViewerSource interface {
	ViewerWorldPosition() model.Vec3
}

// FrustumTester is an optional collaborator. When present it sets each
// entity's visibility flag; it never gates physics.
type FrustumTester interface {
	InFrustum(h model.VisualHandle) bool
}

// FixedViewer is a ViewerSource pinned to one position, handy for the
// headless runner and tests.
type FixedViewer Vec3

func (v FixedViewer) ViewerWorldPosition() model.Vec3 { return model.Vec3(v) }
