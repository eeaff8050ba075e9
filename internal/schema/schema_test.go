package schema

import (
	"encoding/json"
	"testing"
)

func TestEnhanceMap_TopLevel(t *testing.T) {
	m := EnhanceMap()

	if m["type"] != "object" {
		t.Errorf("expected object type, got %v", m["type"])
	}

	required, ok := m["required"].([]interface{})
	if !ok || len(required) != 2 {
		t.Fatalf("expected two required keys, got %v", m["required"])
	}
	if required[0] != "analysis" || required[1] != "suggestions" {
		t.Errorf("unexpected required keys: %v", required)
	}
}

func TestEnhanceMap_CriteriaRequireAllFields(t *testing.T) {
	props := EnhanceMap()["properties"].(map[string]interface{})
	analysis := props["analysis"].(map[string]interface{})
	fields := analysis["properties"].(map[string]interface{})

	for _, name := range []string{"clarity", "specificity", "actionability", "context"} {
		c, ok := fields[name].(map[string]interface{})
		if !ok {
			t.Fatalf("missing criterion %q", name)
		}
		req, _ := c["required"].([]interface{})
		if len(req) != 2 {
			t.Errorf("%s: expected score and feedback required, got %v", name, req)
		}
	}

	if len(analysis["required"].([]interface{})) != 6 {
		t.Errorf("expected six required analysis fields")
	}
}

func TestEnhanceStrict_IsValidJSON(t *testing.T) {
	var v map[string]interface{}
	if err := json.Unmarshal([]byte(EnhanceStrict), &v); err != nil {
		t.Fatalf("strict schema is not valid JSON: %v", err)
	}
}

func TestEnhanceMap_ObjectsAreClosed(t *testing.T) {
	var walk func(path string, node map[string]interface{})
	walk = func(path string, node map[string]interface{}) {
		if node["type"] == "object" {
			if node["additionalProperties"] != false {
				t.Errorf("%s: expected additionalProperties false, got %v", path, node["additionalProperties"])
			}
			props, _ := node["properties"].(map[string]interface{})
			required, _ := node["required"].([]interface{})
			if len(required) != len(props) {
				t.Errorf("%s: expected every property to be required, got %d of %d", path, len(required), len(props))
			}
			for name, child := range props {
				if c, ok := child.(map[string]interface{}); ok {
					walk(path+"."+name, c)
				}
			}
		}
		if items, ok := node["items"].(map[string]interface{}); ok {
			walk(path+"[]", items)
		}
	}

	walk("$", EnhanceMap())
}
