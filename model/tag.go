package model

import (
	"strings"
)

// Tag represents parsed crud tags
type Tag struct {
	Column string
	ID     bool
	Skip   bool
}

// ParseTag parses the "crud" tag string. Options are separated by
// spaces, semicolons or commas, e.g. `crud:"id column:user_id"`.
func ParseTag(tagStr string) *Tag {
	tag := &Tag{}
	if tagStr == "" {
		return tag
	}
	if tagStr == "-" {
		tag.Skip = true
		return tag
	}

	norm := strings.NewReplacer(";", " ", ",", " ").Replace(tagStr)
	for _, part := range strings.Fields(norm) {
		kv := strings.SplitN(part, ":", 2)
		key := strings.ToLower(kv[0])
		var val string
		if len(kv) > 1 {
			val = strings.TrimSpace(kv[1])
		}

		switch key {
		case "column":
			tag.Column = val
		case "id", "pk":
			tag.ID = true
		case "-":
			tag.Skip = true
		}
	}
	return tag
}
