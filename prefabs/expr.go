package prefabs

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"gopkg.in/yaml.v3"
)

const exprTimeout = 250 * time.Millisecond

// EvalNumber evaluates a tengo expression such as "math.pi / 8" to a float.
// The stdlib math module is pre-imported as `math`.
func EvalNumber(expr string) (float64, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return 0, fmt.Errorf("prefabs: empty expression")
	}
	if f, err := strconv.ParseFloat(expr, 64); err == nil {
		return f, nil
	}

	src := "math := import(\"math\")\n__res := (" + expr + ")"
	script := tengo.NewScript([]byte(src))
	script.SetImports(stdlib.GetModuleMap("math"))

	ctx, cancel := context.WithTimeout(context.Background(), exprTimeout)
	defer cancel()

	compiled, err := script.RunContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("prefabs: eval %q: %w", expr, err)
	}
	res := compiled.Get("__res")
	switch res.ValueType() {
	case "int", "float":
		return res.Float(), nil
	default:
		return 0, fmt.Errorf("prefabs: eval %q: result is %s, not a number", expr, res.ValueType())
	}
}

// Number is a float that may be written in YAML either as a literal or as a
// tengo expression string.
type Number float64

func (n Number) Float() float64 {
	return float64(n)
}

func (n *Number) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("prefabs: line %d: number must be a scalar", value.Line)
	}
	f, err := EvalNumber(value.Value)
	if err != nil {
		return fmt.Errorf("prefabs: line %d: %w", value.Line, err)
	}
	*n = Number(f)
	return nil
}

// Vec3Spec is a three element YAML sequence of Numbers.
type Vec3Spec [3]Number

func (v Vec3Spec) XYZ() (float64, float64, float64) {
	return v[0].Float(), v[1].Float(), v[2].Float()
}

func (v *Vec3Spec) UnmarshalYAML(value *yaml.Node) error {
	var parts []Number
	if err := value.Decode(&parts); err != nil {
		return err
	}
	if len(parts) != 3 {
		return fmt.Errorf("prefabs: line %d: vector needs 3 components, got %d", value.Line, len(parts))
	}
	copy(v[:], parts)
	return nil
}
