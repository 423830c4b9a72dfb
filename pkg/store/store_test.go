package store

import (
	"context"
	"testing"
	"time"

	"github.com/panforge/panlayout/pkg/errors"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fs,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer st.Close()

			inst, err := NewInstrument("My Kurd", "  D/(F)-A-Bb-C-D-E-F-G-A ", "Aeolian")
			if err != nil {
				t.Fatal(err)
			}
			if err := st.Save(ctx, inst); err != nil {
				t.Fatalf("Save: %v", err)
			}
			if inst.ID == "" || inst.CreatedAt.IsZero() {
				t.Fatalf("Save should assign id and time: %+v", inst)
			}

			got, err := st.Get(ctx, inst.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Name != "My Kurd" || got.Layout != "D/(F)-A-Bb-C-D-E-F-G-A" || got.Mode != "aeolian" || got.Notes != 10 {
				t.Errorf("Get = %+v", got)
			}

			got.Name = "changed"
			again, _ := st.Get(ctx, inst.ID)
			if again.Name != "My Kurd" {
				t.Error("mutating a returned instrument changed the store")
			}

			if err := st.Delete(ctx, inst.ID); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := st.Get(ctx, inst.ID); !errors.Is(err, errors.ErrCodeNotFound) {
				t.Errorf("Get after Delete = %v, want NOT_FOUND", err)
			}
			if err := st.Delete(ctx, inst.ID); err != nil {
				t.Errorf("second Delete should be a no-op: %v", err)
			}
		})
	}
}

func TestStoreList(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for name, st := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for i, n := range []string{"Second", "First", "Third"} {
				inst := &Instrument{Name: n, Layout: "D/-A-Bb-C", Mode: "aeolian"}
				switch n {
				case "First":
					inst.CreatedAt = base
				case "Second":
					inst.CreatedAt = base.Add(time.Hour)
				default:
					inst.CreatedAt = base.Add(time.Duration(i+1) * time.Hour)
				}
				if err := st.Save(ctx, inst); err != nil {
					t.Fatal(err)
				}
			}
			list, err := st.List(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if len(list) != 3 {
				t.Fatalf("List returned %d instruments", len(list))
			}
			for i, want := range []string{"First", "Second", "Third"} {
				if list[i].Name != want {
					t.Errorf("list[%d] = %s, want %s", i, list[i].Name, want)
				}
			}
		})
	}
}

func TestStoreSaveReplaces(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	inst, _ := NewInstrument("Kurd", "D/-A-Bb-C", "aeolian")
	if err := st.Save(ctx, inst); err != nil {
		t.Fatal(err)
	}
	inst.Layout = "D/-A-Bb-C-D-E"
	if err := st.Save(ctx, inst); err != nil {
		t.Fatal(err)
	}
	list, _ := st.List(ctx)
	if len(list) != 1 || list[0].Notes != 6 {
		t.Errorf("Save with existing id should replace: %+v", list)
	}
}

func TestSaveValidates(t *testing.T) {
	tests := []struct {
		name string
		inst *Instrument
		code errors.Code
	}{
		{"nil", nil, errors.ErrCodeInvalidInput},
		{"empty name", &Instrument{Layout: "D/-A", Mode: "aeolian"}, errors.ErrCodeInvalidInput},
		{"bad mode", &Instrument{Name: "x", Layout: "D/-A", Mode: "bebop"}, errors.ErrCodeInvalidMode},
		{"bad pitch", &Instrument{Name: "x", Layout: "D/-A-H", Mode: "aeolian"}, errors.ErrCodeInvalidPitchClass},
		{"no notes", &Instrument{Name: "x", Layout: "D/", Mode: "aeolian"}, errors.ErrCodeParseFailure},
		{"bad id", &Instrument{ID: "../etc", Name: "x", Layout: "D/-A", Mode: "aeolian"}, errors.ErrCodeInvalidInput},
	}
	ctx := context.Background()
	for name, st := range backends(t) {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				err := st.Save(ctx, tt.inst)
				if !errors.Is(err, tt.code) {
					t.Errorf("Save error = %v, want %s", err, tt.code)
				}
			})
		}
	}
}

func TestFileStoreRejectsPathIDs(t *testing.T) {
	st, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := st.Get(context.Background(), "../../secret"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get with path id = %v, want NOT_FOUND", err)
	}
}

func TestMongoDocConversion(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	inst := &Instrument{ID: "a", Name: "Kurd", Layout: "D/-A", Mode: "aeolian", Notes: 2, CreatedAt: created}
	got := toDoc(inst).instrument()
	if *got != *inst {
		t.Errorf("doc round trip = %+v, want %+v", got, inst)
	}
}

func TestNewMongoStoreRequiresURI(t *testing.T) {
	if _, err := NewMongoStore(context.Background(), MongoOptions{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}
