package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Text is a scalar field. Strings are taken as is, numbers and booleans
// keep their JSON spelling, and anything else (null, objects, arrays)
// reads as empty.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		*t = ""
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	case '{', '[', 'n':
		*t = ""
	default:
		*t = Text(b)
	}
	return nil
}

func (t Text) String() string { return string(t) }

// Flag is a lenient boolean: true, "true", "1" and non-zero numbers are set
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	var t Text
	if err := t.UnmarshalJSON(b); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(string(t))) {
	case "", "false", "0", "no", "non":
		*f = false
	default:
		*f = true
	}
	return nil
}

// List is a lenient JSON array. A value that is not an array reads as an
// empty list, and elements that do not decode are dropped.
type List[T any] []T

func (l *List[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '[' {
		*l = nil
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		*l = nil
		return nil
	}
	out := make(List[T], 0, len(raw))
	for _, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	*l = out
	return nil
}

// Photo is one uploaded picture
type Photo struct {
	URL     Text `json:"url"`
	Caption Text `json:"caption"`
	IsCover Flag `json:"isCover"`
}

// PhotoGroup is a labelled set of pictures
type PhotoGroup struct {
	GroupLabel Text        `json:"groupLabel"`
	Photos     List[Photo] `json:"photos"`
}

// Defect is one maintenance defect on an element
type Defect struct {
	Defect         Text `json:"defect"`
	Comment        Text `json:"comment"`
	MaxDueDate     Text `json:"max_due_date"`
	CompletionDate Text `json:"completion_date"`
}

// Element is an inspected element and its defects
type Element struct {
	Element Text         `json:"element"`
	Defects List[Defect] `json:"defects"`
}

// MaintenanceTask groups elements by location in the installation
type MaintenanceTask struct {
	Location Text          `json:"location"`
	Elements List[Element] `json:"elements"`
}

// Inspection is the record a report is rendered from. Field names follow
// the JSON the inspection form posts.
type Inspection struct {
	// cover
	ClientName            Text       `json:"client_name"`
	ClientAddress         Text       `json:"client_address"`
	Representative        Text       `json:"representative"`
	RepresentativeAddress Text       `json:"representative_address"`
	InstallationAddress   Text       `json:"installation_address"`
	ServiceTitles         List[Text] `json:"service_titles"`
	InstallationRef       Text       `json:"installation_ref"`

	// 1 - preamble
	AuditDate     Text `json:"audit_date"`
	AuditDateNote Text `json:"audit_date_note"`
	ReportDate    Text `json:"report_date"`
	ReportObjects Text `json:"report_objects"`

	// 2 - provider
	MaintenanceProvider   Text `json:"maintenance_provider"`
	MaintenanceProviderID Text `json:"maintenance_provider_id"`

	// 3.1 - general information
	ReferenceStandards        Text `json:"reference_standards"`
	InstallerMaintainerNumber Text `json:"installer_maintainer_number"`
	DeviceType                Text `json:"device_type"`
	BuildingType              Text `json:"building_type"`
	ERP                       Text `json:"erp"`
	IGH                       Text `json:"igh"`
	ERT                       Text `json:"ert"`
	InstallationLocation      Text `json:"installation_location"`
	InstallationSituation     Text `json:"installation_situation"`
	BuildingFloors            Text `json:"building_floors"`
	OriginalBrand             Text `json:"original_brand"`
	MaintenanceBrand          Text `json:"maintenance_brand"`
	InstallationDate          Text `json:"installation_date"`
	DeviceRenovated           Text `json:"device_renovated"`
	RenovationDate            Text `json:"renovation_date"`

	// 3.2 - main characteristics
	NominalLoad            Text `json:"nominal_load"`
	PersonCount            Text `json:"person_count"`
	SpeedRegulationType    Text `json:"speed_regulation_type"`
	AccessFacesCount       Text `json:"access_faces_count"`
	NominalSpeed           Text `json:"nominal_speed"`
	LevelsCount            Text `json:"levels_count"`
	LevelsDesignation      Text `json:"levels_designation"`
	ElevationTravel        Text `json:"elevation_travel"`
	TechnologyType         Text `json:"technology_type"`
	ControlCabinetBrand    Text `json:"control_cabinet_brand"`
	ManeuverType           Text `json:"maneuver_type"`
	TractionBrandReference Text `json:"traction_brand_reference"`
	TractionType           Text `json:"traction_type"`
	TractionCablesCount    Text `json:"traction_cables_count"`
	TractionCableDiameter  Text `json:"traction_cable_diameter"`
	CabinDoorType          Text `json:"cabin_door_type"`
	CabinDoorFinish        Text `json:"cabin_door_finish"`
	LandingDoorsType       Text `json:"landing_doors_type"`
	LandingDoorsFinish     Text `json:"landing_doors_finish"`

	// 3.3 - machinery
	MachineryPosition   Text `json:"machinery_position"`
	MachineryAccessType Text `json:"machinery_access_type"`
	VentilationPresence Text `json:"ventilation_presence"`
	AnchorHooksPresence Text `json:"anchor_hooks_presence"`
	StampedAnchors      Text `json:"stamped_anchors"`

	// 3.4 - shaft
	ShaftType               Text `json:"shaft_type"`
	ShaftWidth              Text `json:"shaft_width"`
	ShaftDepth              Text `json:"shaft_depth"`
	ShaftHeight             Text `json:"shaft_height"`
	PitDepth                Text `json:"pit_depth"`
	CabinGuidesType         Text `json:"cabin_guides_type"`
	CounterweightGuidesType Text `json:"counterweight_guides_type"`

	// 3.5 - cabin
	CabinWidth         Text `json:"cabin_width"`
	CabinDepth         Text `json:"cabin_depth"`
	CabinHeight        Text `json:"cabin_height"`
	CabinWallsFinish   Text `json:"cabin_walls_finish"`
	CabinLightingType  Text `json:"cabin_lighting_type"`
	CabinCeilingFinish Text `json:"cabin_ceiling_finish"`

	// 4, 5 and 8 - narrative lists
	InstallationEvaluation       List[Text] `json:"installation_evaluation"`
	MaintenanceQualityEvaluation List[Text] `json:"maintenance_quality_evaluation"`
	Conclusions                  List[Text] `json:"conclusions"`

	// 6 and 7
	Photos           List[PhotoGroup]      `json:"photos"`
	MaintenanceTasks List[MaintenanceTask] `json:"maintenance_tasks"`
}

// Decode reads one inspection record. The body must be a JSON object;
// inside it every field is optional.
func Decode(r io.Reader) (*Inspection, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode inspection: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, fmt.Errorf("failed to decode inspection: body is not a JSON object")
	}
	var in Inspection
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("failed to decode inspection: %w", err)
	}
	return &in, nil
}

// CoverPhoto returns the first photo flagged as cover that has a URL
func (in *Inspection) CoverPhoto() string {
	for _, g := range in.Photos {
		for _, p := range g.Photos {
			if p.IsCover && strings.TrimSpace(string(p.URL)) != "" {
				return strings.TrimSpace(string(p.URL))
			}
		}
	}
	return ""
}
