package analysis

import (
	"fmt"
	"strings"

	"github.com/san-kum/physim/internal/dynamo"
)

// BifurcationPoint holds the section values recorded for one parameter.
type BifurcationPoint struct {
	Param  float64
	Values []float64
}

// BifurcationDiagram sweeps paramName over [paramMin, paramMax]. For each
// value it integrates from x0, discards the transient, then records
// x[stateIndex] at every upward zero crossing of x[crossIdx]. The original
// parameter value is restored on return.
func BifurcationDiagram(
	sys dynamo.System,
	integ dynamo.Integrator,
	paramName string,
	paramMin, paramMax float64,
	paramSteps int,
	crossIdx, stateIndex int,
	x0 dynamo.State,
	dt, transient, record float64,
) ([]BifurcationPoint, error) {
	tunable, ok := sys.(dynamo.Configurable)
	if !ok {
		return nil, fmt.Errorf("system has no tunable parameters")
	}
	orig, ok := tunable.GetParams()[paramName]
	if !ok {
		return nil, fmt.Errorf("unknown param: %s", paramName)
	}
	if crossIdx >= len(x0) || stateIndex >= len(x0) {
		return nil, fmt.Errorf("state index out of range for dimension %d", len(x0))
	}
	defer tunable.SetParam(paramName, orig)

	paramSteps = max(paramSteps, 2)
	paramStep := (paramMax - paramMin) / float64(paramSteps-1)
	results := make([]BifurcationPoint, 0, paramSteps)

	for i := 0; i < paramSteps; i++ {
		param := paramMin + float64(i)*paramStep
		if err := tunable.SetParam(paramName, param); err != nil {
			return results, err
		}

		x := x0.Clone()
		t := 0.0
		for t < transient {
			x = integ.Step(sys, x, t, dt)
			t += dt
		}

		var values []float64
		prev := x[crossIdx]
		for t < transient+record {
			x = integ.Step(sys, x, t, dt)
			t += dt
			if prev < 0 && x[crossIdx] >= 0 {
				values = append(values, x[stateIndex])
			}
			prev = x[crossIdx]
		}
		results = append(results, BifurcationPoint{Param: param, Values: values})
	}
	return results, nil
}

// BifurcationToASCII plots one column per parameter value.
func BifurcationToASCII(data []BifurcationPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	found := false
	for _, p := range data {
		for _, v := range p.Values {
			if !found {
				minVal, maxVal = v, v
				found = true
				continue
			}
			minVal, maxVal = min(minVal, v), max(maxVal, v)
		}
	}
	if !found {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}
	for i, p := range data {
		col := min(i*width/len(data), width-1)
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}
