package format

import "fmt"

// Structural validators. These check shape (types and length caps)
// only; referential integrity between items, placements and anchors is
// the model layer's concern.

// Validate dispatches on the detected format and returns a list of
// human-readable problems. An empty list means the payload is
// structurally sound.
func Validate(payload any) []string {
	switch Detect(payload) {
	case FormatCompact:
		return ValidateCompact(payload)
	case FormatFull:
		return ValidateFull(payload)
	default:
		return []string{ErrUnknownFormat.Error()}
	}
}

// ValidateCompact checks the compact tuple shapes and length caps.
func ValidateCompact(payload any) []string {
	var errs []string
	obj, ok := payload.(map[string]any)
	if !ok || obj == nil {
		return []string{"compact diagram must be a JSON object"}
	}

	if t, present := obj["t"]; present {
		title, ok := t.(string)
		if !ok {
			errs = append(errs, "t (title) must be a string")
		} else if len([]rune(title)) > MaxCompactTitle {
			errs = append(errs, fmt.Sprintf("t (title) exceeds %d characters", MaxCompactTitle))
		}
	}

	items, ok := obj["i"].([]any)
	if !ok {
		errs = append(errs, "i (items) must be an array")
	} else {
		for n, entry := range items {
			tuple, ok := entry.([]any)
			if !ok {
				errs = append(errs, fmt.Sprintf("i[%d] must be a [name, icon, description] array", n))
				continue
			}
			if len(tuple) > 3 {
				errs = append(errs, fmt.Sprintf("i[%d] has %d elements, want at most 3", n, len(tuple)))
			}
			for k, field := range tuple {
				if k >= 3 {
					break
				}
				s, ok := field.(string)
				if !ok {
					errs = append(errs, fmt.Sprintf("i[%d][%d] must be a string", n, k))
					continue
				}
				switch k {
				case 0:
					if len([]rune(s)) > MaxCompactName {
						errs = append(errs, fmt.Sprintf("i[%d] name exceeds %d characters", n, MaxCompactName))
					}
				case 2:
					if len([]rune(s)) > MaxCompactDescription {
						errs = append(errs, fmt.Sprintf("i[%d] description exceeds %d characters", n, MaxCompactDescription))
					}
				}
			}
		}
	}

	views, ok := obj["v"].([]any)
	if !ok {
		errs = append(errs, "v (views) must be an array")
		return errs
	}
	for vi, entry := range views {
		tuple, ok := entry.([]any)
		if !ok || len(tuple) != 2 {
			errs = append(errs, fmt.Sprintf("v[%d] must be a [positions, connections] pair", vi))
			continue
		}
		positions, ok := tuple[0].([]any)
		if !ok {
			errs = append(errs, fmt.Sprintf("v[%d] positions must be an array", vi))
		} else {
			for pi, p := range positions {
				pos, ok := p.([]any)
				if !ok || len(pos) != 3 {
					errs = append(errs, fmt.Sprintf("v[%d] position %d must be [itemIndex, x, y]", vi, pi))
					continue
				}
				for _, field := range pos {
					if _, ok := field.(float64); !ok {
						errs = append(errs, fmt.Sprintf("v[%d] position %d must contain only numbers", vi, pi))
						break
					}
				}
			}
		}
		connections, ok := tuple[1].([]any)
		if !ok {
			errs = append(errs, fmt.Sprintf("v[%d] connections must be an array", vi))
			continue
		}
		for ci, c := range connections {
			conn, ok := c.([]any)
			if !ok || len(conn) < 2 {
				errs = append(errs, fmt.Sprintf("v[%d] connection %d must be at least [fromIndex, toIndex]", vi, ci))
				continue
			}
			for k := 0; k < 2; k++ {
				if _, ok := conn[k].(float64); !ok {
					errs = append(errs, fmt.Sprintf("v[%d] connection %d endpoint %d must be a number", vi, ci, k))
				}
			}
		}
	}
	return errs
}

// ValidateFull checks the canonical shape: scalar types on the model,
// object-typed items carrying id and name, and array-typed view
// collections.
func ValidateFull(payload any) []string {
	var errs []string
	obj, ok := payload.(map[string]any)
	if !ok || obj == nil {
		return []string{"full diagram must be a JSON object"}
	}

	if _, ok := obj["title"].(string); !ok {
		errs = append(errs, "title must be a string")
	}
	if d, present := obj["description"]; present {
		if _, ok := d.(string); !ok {
			errs = append(errs, "description must be a string")
		}
	}

	items, ok := obj["items"].([]any)
	if !ok {
		errs = append(errs, "items must be an array")
	} else {
		for n, entry := range items {
			item, ok := entry.(map[string]any)
			if !ok {
				errs = append(errs, fmt.Sprintf("items[%d] must be an object", n))
				continue
			}
			if id, _ := item["id"].(string); id == "" {
				errs = append(errs, fmt.Sprintf("items[%d] is missing a string id", n))
			}
			if _, ok := item["name"].(string); !ok {
				errs = append(errs, fmt.Sprintf("items[%d] is missing a string name", n))
			}
		}
	}

	views, ok := obj["views"].([]any)
	if !ok {
		errs = append(errs, "views must be an array")
		return errs
	}
	if len(views) == 0 {
		errs = append(errs, "views must contain at least one view")
	}
	for vi, entry := range views {
		view, ok := entry.(map[string]any)
		if !ok {
			errs = append(errs, fmt.Sprintf("views[%d] must be an object", vi))
			continue
		}
		if id, _ := view["id"].(string); id == "" {
			errs = append(errs, fmt.Sprintf("views[%d] is missing a string id", vi))
		}
		for _, field := range []string{"items", "connectors", "rectangles", "textBoxes"} {
			v, present := view[field]
			if !present {
				continue
			}
			if _, ok := v.([]any); !ok {
				errs = append(errs, fmt.Sprintf("views[%d].%s must be an array", vi, field))
			}
		}
	}
	return errs
}
