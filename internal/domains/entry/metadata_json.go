package entry

import (
	"encoding/json"
	"fmt"
)

// metadataEnvelope is the storage encoding of the metadata union: the
// category tag plus the single matching payload.
type metadataEnvelope struct {
	Category Category     `json:"category"`
	Book     *BookInfo    `json:"bookInfo,omitempty"`
	Project  *ProjectInfo `json:"projectInfo,omitempty"`
	Thought  *ThoughtInfo `json:"thoughtInfo,omitempty"`
	Writing  *WritingInfo `json:"writingInfo,omitempty"`
}

// MarshalMetadata encodes a variant for the jsonb metadata column.
func MarshalMetadata(m Metadata) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("marshal metadata: nil variant")
	}

	env := metadataEnvelope{Category: m.Category()}
	switch v := m.(type) {
	case BookInfo:
		env.Book = &v
	case ProjectInfo:
		env.Project = &v
	case ThoughtInfo:
		env.Thought = &v
	case WritingInfo:
		env.Writing = &v
	default:
		return nil, fmt.Errorf("marshal metadata: unknown variant %T", m)
	}

	return json.Marshal(env)
}

// UnmarshalMetadata decodes the jsonb metadata column back into the variant
// selected by the category tag. Payloads not matching the tag are ignored.
func UnmarshalMetadata(data []byte) (Metadata, error) {
	var env metadataEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal metadata: %w", err)
	}

	switch env.Category {
	case CategoryLibrary:
		if env.Book != nil {
			return *env.Book, nil
		}
		return BookInfo{}, nil
	case CategoryProject:
		if env.Project != nil {
			return *env.Project, nil
		}
		return ProjectInfo{}, nil
	case CategoryWriting:
		if env.Writing != nil {
			return *env.Writing, nil
		}
		return WritingInfo{}, nil
	case CategoryThought:
		if env.Thought != nil {
			return *env.Thought, nil
		}
		return ThoughtInfo{}, nil
	default:
		return nil, fmt.Errorf("unmarshal metadata: unknown category %q", env.Category)
	}
}
