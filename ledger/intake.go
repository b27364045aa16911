package ledger

import (
	"strings"
)

// Verdict is the intake classification for one candidate file.
type Verdict int

const (
	Accepted Verdict = iota
	RejectedInvalidType
	RejectedDuplicate
)

func (v Verdict) String() string {
	switch v {
	case Accepted:
		return "accepted"
	case RejectedInvalidType:
		return "invalid type or extension"
	case RejectedDuplicate:
		return "duplicate file name"
	default:
		return "unknown"
	}
}

// Intake classifies candidate files against the accepted-type policy.
// Classification is pure; the ledger performs the mutation and the caller
// reports rejections.
type Intake struct {
	mediaTypes map[string]struct{}
	extensions []string
}

func NewIntake(mediaTypes, extensions []string) *Intake {
	in := &Intake{
		mediaTypes: make(map[string]struct{}, len(mediaTypes)),
		extensions: make([]string, 0, len(extensions)),
	}
	for _, mt := range mediaTypes {
		in.mediaTypes[strings.ToLower(mt)] = struct{}{}
	}
	for _, ext := range extensions {
		in.extensions = append(in.extensions, strings.ToLower(ext))
	}
	return in
}

// Validate classifies one candidate. The declared media type and the file
// extension are checked as an OR: a mistyped or missing media type with a
// correct extension still passes. exists reports whether a pending file with
// the same name is already in the ledger.
func (in *Intake) Validate(name, mediaType string, exists func(name string) bool) Verdict {
	allowedType := false
	if mediaType != "" {
		// strip parameters like "; codecs=..." before matching
		mt := strings.ToLower(strings.TrimSpace(strings.SplitN(mediaType, ";", 2)[0]))
		_, allowedType = in.mediaTypes[mt]
	}
	allowedExtension := false
	lower := strings.ToLower(name)
	for _, ext := range in.extensions {
		if strings.HasSuffix(lower, ext) {
			allowedExtension = true
			break
		}
	}
	if !allowedType && !allowedExtension {
		return RejectedInvalidType
	}
	if exists != nil && exists(name) {
		return RejectedDuplicate
	}
	return Accepted
}
