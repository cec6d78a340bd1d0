package participant

import (
	"encoding/json"
	"testing"
)

func TestParseProfile(t *testing.T) {
	tests := []struct {
		name string
		want Profile
	}{
		{name: "Participant", want: ProfileParticipant},
		{name: "Intern", want: ProfileIntern},
		{name: "Extern", want: ProfileExtern},
		{name: "intern", want: ProfileUnknown},
		{name: "Visitor", want: ProfileUnknown},
		{name: "", want: ProfileUnknown},
	}
	for _, tt := range tests {
		if got := ParseProfile(tt.name); got != tt.want {
			t.Errorf("ParseProfile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestProfile_JSON(t *testing.T) {
	data, err := json.Marshal(ProfileIntern)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"Intern"` {
		t.Errorf("Marshal() = %s", data)
	}

	var p Profile
	if err = json.Unmarshal([]byte(`"Nope"`), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if p.Recognized() {
		t.Error("Recognized() = true for unknown profile")
	}
}

func TestParticipant_FullName(t *testing.T) {
	p := Participant{FirstName: "Jean", LastName: "Dupont"}
	if got := p.FullName(); got != "Jean Dupont" {
		t.Errorf("FullName() = %q", got)
	}
}
