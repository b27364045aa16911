package ledger

import (
	"testing"
)

func newTestIntake() *Intake {
	return NewIntake([]string{"audio/mpeg", "audio/mp3"}, []string{".mp3"})
}

// TestIntakeValidate checks the accept rule: media type in the allow-set OR
// an accepted extension, case-insensitively.
func TestIntakeValidate(t *testing.T) {
	in := newTestIntake()
	noExisting := func(string) bool { return false }

	cases := []struct {
		name      string
		fileName  string
		mediaType string
		want      Verdict
	}{
		{"typed mp3", "track.mp3", "audio/mpeg", Accepted},
		{"alternate media type", "track.mp3", "audio/mp3", Accepted},
		{"right type wrong extension", "track.wav", "audio/mpeg", Accepted},
		{"wrong type right extension", "TRACK.MP3", "text/plain", Accepted},
		{"missing media type", "song.mp3", "", Accepted},
		{"uppercase media type", "track.mp3", "AUDIO/MPEG", Accepted},
		{"media type with parameters", "track.bin", "audio/mpeg; codecs=mp3", Accepted},
		{"wrong type wrong extension", "track.wav", "text/plain", RejectedInvalidType},
		{"no type no extension", "notes.txt", "", RejectedInvalidType},
	}
	for _, tc := range cases {
		got := in.Validate(tc.fileName, tc.mediaType, noExisting)
		if got != tc.want {
			t.Errorf("%s: Validate(%q, %q) = %v, want %v", tc.name, tc.fileName, tc.mediaType, got, tc.want)
		}
	}
}

// TestIntakeValidateDuplicate checks that an otherwise valid candidate whose
// name is already in the ledger is classified as a duplicate.
func TestIntakeValidateDuplicate(t *testing.T) {
	in := newTestIntake()
	exists := func(name string) bool { return name == "a.mp3" }

	if got := in.Validate("a.mp3", "audio/mpeg", exists); got != RejectedDuplicate {
		t.Errorf("expected RejectedDuplicate, got %v", got)
	}
	if got := in.Validate("b.mp3", "audio/mpeg", exists); got != Accepted {
		t.Errorf("expected Accepted for non-duplicate, got %v", got)
	}
	// the type check comes first: an invalid file is never reported as duplicate
	if got := in.Validate("a.mp3.wav", "text/plain", exists); got != RejectedInvalidType {
		t.Errorf("expected RejectedInvalidType, got %v", got)
	}
}
