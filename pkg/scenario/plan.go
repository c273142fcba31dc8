/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package scenario

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spjmurray/go-util/pkg/set"
)

var (
	ErrInvalidStep = errors.New("invalid step")

	ErrDuplicateStep = errors.New("duplicate step")

	ErrUnknownDependency = errors.New("unknown dependency")

	ErrDependencyCycle = errors.New("dependency cycle")
)

// validate checks every step is runnable and returns an index of names.
func validate(steps []Step) (map[string]int, error) {
	index := make(map[string]int, len(steps))

	for i, step := range steps {
		if step.Name == "" {
			return nil, fmt.Errorf("%w: step at position %d has no name", ErrInvalidStep, i)
		}

		if step.Execute == nil {
			return nil, fmt.Errorf("%w: step %s has no execute function", ErrInvalidStep, step.Name)
		}

		if _, ok := index[step.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateStep, step.Name)
		}

		index[step.Name] = i
	}

	return index, nil
}

// Plan resolves the dependencies between steps into an execution order.
// Every step comes after all of its dependencies, and of the steps that are
// ready to run the one with the lowest Order goes first, ties going to the
// one declared first.
func Plan(steps []Step) ([]Step, error) {
	index, err := validate(steps)
	if err != nil {
		return nil, err
	}

	// pending counts unsatisfied dependencies, dependents is the reverse
	// edge list used to release steps once a dependency is scheduled.
	pending := make([]int, len(steps))
	dependents := make([][]int, len(steps))

	for i, step := range steps {
		dependencies := set.New[string](step.DependsOn...)

		for name := range dependencies.All() {
			dependency, ok := index[name]
			if !ok {
				return nil, fmt.Errorf("%w: step %s depends on %s", ErrUnknownDependency, step.Name, name)
			}

			pending[i]++
			dependents[dependency] = append(dependents[dependency], i)
		}
	}

	scheduled := make([]bool, len(steps))
	plan := make([]Step, 0, len(steps))

	for len(plan) < len(steps) {
		next := -1

		for i := range steps {
			if scheduled[i] || pending[i] > 0 {
				continue
			}

			if next < 0 || steps[i].Order < steps[next].Order {
				next = i
			}
		}

		if next < 0 {
			var stuck []string

			for i := range steps {
				if !scheduled[i] {
					stuck = append(stuck, steps[i].Name)
				}
			}

			return nil, fmt.Errorf("%w: between %s", ErrDependencyCycle, strings.Join(stuck, ", "))
		}

		scheduled[next] = true
		plan = append(plan, steps[next])

		for _, dependent := range dependents[next] {
			pending[dependent]--
		}
	}

	return plan, nil
}
