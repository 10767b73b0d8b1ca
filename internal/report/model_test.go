package report

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeLenientScalars(t *testing.T) {
	in, err := Decode(strings.NewReader(`{
		"client_name": "Client Test",
		"building_floors": 5,
		"nominal_speed": 1.6,
		"erp": true,
		"igh": null,
		"ert": {"value": "Non"},
		"installation_ref": ["REF"]
	}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	got := []Text{in.ClientName, in.BuildingFloors, in.NominalSpeed, in.ERP, in.IGH, in.ERT, in.InstallationRef, in.ShaftType}
	want := []Text{"Client Test", "5", "1.6", "true", "", "", "", ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("scalars mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeLenientLists(t *testing.T) {
	in, err := Decode(strings.NewReader(`{
		"installation_evaluation": "not a list",
		"maintenance_quality_evaluation": ["first", 2, null],
		"conclusions": {"0": "x"},
		"photos": [
			"garbage",
			{"groupLabel": "Cabine", "photos": [{"url": "a.jpg", "caption": "Vue", "isCover": "true"}, 7]},
			{"groupLabel": "Gaine", "photos": "none"}
		],
		"maintenance_tasks": [{"location": "Machinerie", "elements": [{"element": "Frein", "defects": [{"defect": "Usure", "max_due_date": "01/2026"}]}]}]
	}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if in.InstallationEvaluation != nil {
		t.Errorf("non-array list = %v, want nil", in.InstallationEvaluation)
	}
	if in.Conclusions != nil {
		t.Errorf("object list = %v, want nil", in.Conclusions)
	}
	if diff := cmp.Diff(List[Text]{"first", "2", ""}, in.MaintenanceQualityEvaluation); diff != "" {
		t.Errorf("text list mismatch (-want +got):\n%s", diff)
	}

	wantPhotos := List[PhotoGroup]{
		{GroupLabel: "Cabine", Photos: List[Photo]{{URL: "a.jpg", Caption: "Vue", IsCover: true}}},
		{GroupLabel: "Gaine"},
	}
	if diff := cmp.Diff(wantPhotos, in.Photos); diff != "" {
		t.Errorf("photos mismatch (-want +got):\n%s", diff)
	}

	d := in.MaintenanceTasks[0].Elements[0].Defects[0]
	if d.Defect != "Usure" || d.MaxDueDate != "01/2026" || d.CompletionDate != "" {
		t.Errorf("defect = %+v", d)
	}
}

func TestDecodeRejectsNonObject(t *testing.T) {
	for _, body := range []string{"", "[]", `"report"`, "{"} {
		if _, err := Decode(strings.NewReader(body)); err == nil {
			t.Errorf("Decode(%q) returned no error", body)
		}
	}
}

func TestFlag(t *testing.T) {
	tests := []struct {
		raw  string
		want Flag
	}{
		{`true`, true},
		{`"true"`, true},
		{`1`, true},
		{`"oui"`, true},
		{`false`, false},
		{`"false"`, false},
		{`0`, false},
		{`null`, false},
		{`""`, false},
	}
	for _, tt := range tests {
		var f Flag
		if err := f.UnmarshalJSON([]byte(tt.raw)); err != nil {
			t.Fatalf("UnmarshalJSON(%s) error = %v", tt.raw, err)
		}
		if f != tt.want {
			t.Errorf("UnmarshalJSON(%s) = %v, want %v", tt.raw, f, tt.want)
		}
	}
}

func TestCoverPhoto(t *testing.T) {
	in := &Inspection{Photos: List[PhotoGroup]{
		{Photos: List[Photo]{{URL: "a.jpg"}, {URL: " ", IsCover: true}}},
		{Photos: List[Photo]{{URL: " b.jpg ", IsCover: true}, {URL: "c.jpg", IsCover: true}}},
	}}
	if got := in.CoverPhoto(); got != "b.jpg" {
		t.Errorf("CoverPhoto() = %q, want b.jpg", got)
	}
	if got := (&Inspection{}).CoverPhoto(); got != "" {
		t.Errorf("CoverPhoto() of empty inspection = %q, want empty", got)
	}
}
