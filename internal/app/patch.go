package app

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonpatch "gopkg.in/evanphx/json-patch.v4"

	"magic_villa/internal/domain"
)

// PatchOperation is one RFC 6902 operation targeting the update shape of a villa.
type PatchOperation struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
	From  string `json:"from,omitempty"`
}

var supportedOps = map[string]bool{
	"add":     true,
	"remove":  true,
	"replace": true,
	"move":    true,
	"copy":    true,
	"test":    true,
}

// patchFields maps lower-cased member names to the update shape's JSON names.
var patchFields = map[string]string{
	"id":        "id",
	"name":      "name",
	"details":   "details",
	"rate":      "rate",
	"sqft":      "sqft",
	"occupancy": "occupancy",
	"imageurl":  "imageUrl",
	"amenity":   "amenity",
}

func patchErr(format string, args ...any) error {
	return domain.NewValidationError("", fmt.Sprintf(format, args...))
}

// ParsePatch decodes and checks a patch document. Paths are rewritten to the
// canonical member names, so "/Occupancy" and "/occupancy" address the same field.
func ParsePatch(data []byte) ([]PatchOperation, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, patchErr("patch document is required")
	}
	var ops []PatchOperation
	if err := json.Unmarshal(data, &ops); err != nil {
		return nil, patchErr("invalid JSON patch format: %v", err)
	}
	if len(ops) == 0 {
		return nil, patchErr("patch must contain at least one operation")
	}
	for i := range ops {
		if err := normalizeOperation(&ops[i], i); err != nil {
			return nil, err
		}
	}
	return ops, nil
}

func normalizeOperation(op *PatchOperation, index int) error {
	op.Op = strings.ToLower(op.Op)
	if !supportedOps[op.Op] {
		return patchErr("operation %d: unsupported operation '%s'", index, op.Op)
	}
	if op.Path == "" {
		return patchErr("operation %d: path is required", index)
	}
	p, err := canonicalPath(op.Path)
	if err != nil {
		return patchErr("operation %d: %v", index, err)
	}
	op.Path = p

	switch op.Op {
	case "add", "replace", "test":
		if op.Value == nil {
			return patchErr("operation %d: '%s' operation requires a value", index, op.Op)
		}
	case "move", "copy":
		if op.From == "" {
			return patchErr("operation %d: '%s' operation requires a 'from' field", index, op.Op)
		}
		f, err := canonicalPath(op.From)
		if err != nil {
			return patchErr("operation %d: %v", index, err)
		}
		op.From = f
	}
	return nil
}

func canonicalPath(p string) (string, error) {
	if p[0] != '/' {
		return "", fmt.Errorf("path '%s' must start with '/'", p)
	}
	seg := strings.TrimPrefix(p, "/")
	if strings.Contains(seg, "/") {
		return "", fmt.Errorf("path '%s' addresses a nested member", p)
	}
	name, ok := patchFields[strings.ToLower(seg)]
	if !ok {
		return "", fmt.Errorf("the target location specified by path segment '%s' was not found", seg)
	}
	return "/" + name, nil
}

// ApplyPatch applies ops to a copy of dto. dto itself is never modified.
func ApplyPatch(dto VillaUpdateDTO, ops []PatchOperation) (VillaUpdateDTO, error) {
	doc, err := json.Marshal(dto)
	if err != nil {
		return VillaUpdateDTO{}, err
	}
	raw, err := json.Marshal(ops)
	if err != nil {
		return VillaUpdateDTO{}, err
	}
	p, err := jsonpatch.DecodePatch(raw)
	if err != nil {
		return VillaUpdateDTO{}, patchErr("invalid JSON patch: %v", err)
	}
	patched, err := p.Apply(doc)
	if err != nil {
		return VillaUpdateDTO{}, patchErr("failed to apply JSON patch: %v", err)
	}
	var out VillaUpdateDTO
	if err := json.Unmarshal(patched, &out); err != nil {
		return VillaUpdateDTO{}, patchErr("patched document does not fit the villa shape: %v", err)
	}
	return out, nil
}
