package scene

import (
	"testing"

	"github.com/easelhq/easel/internal/models"
	"github.com/easelhq/easel/internal/surface"
)

func sceneWith(ids ...string) models.Scene {
	sc := models.Scene{
		AppState: models.AppState{
			ViewBackgroundColor: "#ffffff",
			CurrentStrokeColor:  "#1e1e1e",
			FillStyle:           "solid",
			StrokeWidth:         2,
			Roughness:           1,
		},
	}
	for _, id := range ids {
		sc.Elements = append(sc.Elements, models.Element{ID: id, Type: models.TypeRectangle, Width: 10, Height: 10})
	}
	return sc
}

func TestFingerprintDeterministic(t *testing.T) {
	a := Fingerprint(sceneWith("a", "b"))
	b := Fingerprint(sceneWith("a", "b"))
	if a != b {
		t.Errorf("same scene produced different fingerprints: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("fingerprint length = %d, want 64 hex chars", len(a))
	}
}

func TestFingerprintOrderSensitive(t *testing.T) {
	ab := Fingerprint(sceneWith("a", "b"))
	ba := Fingerprint(sceneWith("b", "a"))
	if ab == ba {
		t.Error("element order should be part of the identity (stacking order)")
	}
}

func TestFingerprintChangesWithContent(t *testing.T) {
	base := sceneWith("a")
	moved := sceneWith("a")
	moved.Elements[0].X = 99

	if Fingerprint(base) == Fingerprint(moved) {
		t.Error("moving an element should change the fingerprint")
	}

	restyled := sceneWith("a")
	restyled.AppState.ViewBackgroundColor = "#000000"
	if Fingerprint(base) == Fingerprint(restyled) {
		t.Error("restricted app state is part of the identity")
	}
}

func TestTransientStateNeverAffectsFingerprint(t *testing.T) {
	full := surface.DefaultAppState()
	full.ScrollX = 120
	full.Zoom = 3
	full.ActiveTool = "rectangle"
	full.SelectedElementIDs = []string{"a"}

	quiet := surface.DefaultAppState()

	a := Fingerprint(models.Scene{AppState: full.Restrict()})
	b := Fingerprint(models.Scene{AppState: quiet.Restrict()})
	if a != b {
		t.Error("transient surface state leaked into the fingerprint")
	}
}
