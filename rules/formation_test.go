package rules

import (
	"testing"

	"github.com/nstehr/vimy/vimy-rat/model"
	"github.com/nstehr/vimy/vimy-rat/rat"
)

func TestFormationFor(t *testing.T) {
	wolf := &model.FactionRecord{ID: "CW", Name: "Clan Wolf", Clan: true}
	davion := &model.FactionRecord{ID: "FS", Name: "Federated Suns"}

	tests := []struct {
		name    string
		faction *model.FactionRecord
		want    int
	}{
		{"", wolf, 5},
		{"", davion, 4},
		{"", nil, 4},
		{"Level2", davion, 6},
		{"company", wolf, 12},
	}
	for _, tc := range tests {
		fm, err := FormationFor(tc.name, tc.faction)
		if err != nil {
			t.Fatalf("FormationFor(%q) failed: %v", tc.name, err)
		}
		if fm.Size != tc.want {
			t.Errorf("FormationFor(%q).Size = %d, want %d", tc.name, fm.Size, tc.want)
		}
	}
	if _, err := FormationFor("phalanx", davion); err == nil {
		t.Error("FormationFor(phalanx) succeeded, want error")
	}
}

func TestFormationGenerate(t *testing.T) {
	lyrans := &model.FactionRecord{ID: "LA", Name: "Lyran Commonwealth"}
	gen := rat.GeneratorFunc(func(p rat.Params) []rat.TableEntry {
		return []rat.TableEntry{
			rat.NewUnitEntry(5, atlas),
			rat.NewUnitEntry(5, locust),
		}
	})
	table := rat.New(gen, rat.Params{Faction: lyrans, Year: 3025}, rat.WithRandom(rat.NewSeeded(5)))

	fm, _ := FormationFor("lance", lyrans)
	units := fm.Generate(table, nil)
	if len(units) != 4 {
		t.Fatalf("lance has %d units, want 4", len(units))
	}

	light, err := CompileFilter("light", `IsWeightClass("light")`)
	if err != nil {
		t.Fatal(err)
	}
	units = fm.Generate(table, light.UnitFilter())
	for _, u := range units {
		if u != locust {
			t.Errorf("filtered lance drew %s", u.Name())
		}
	}
	if TotalBV(units) != 4*locust.BV {
		t.Errorf("TotalBV = %d, want %d", TotalBV(units), 4*locust.BV)
	}
}
