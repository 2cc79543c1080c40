package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const leaf = -1

var (
	ErrInvalidTree   = errors.New("invalid decision tree")
	ErrFeatureCount  = errors.New("feature count mismatch")
	ErrFeatureOrder  = errors.New("feature order mismatch")
	ErrEmptyArtifact = errors.New("empty model artifact")
)

// Model is the inference call exposed by a loaded artifact.
type Model interface {
	// Predict evaluates a single feature row.
	Predict(features []float64) (float64, error)
	Name() string
}

// Artifact is the JSON export of a fitted decision-tree regressor. Node i is
// a leaf when ChildrenLeft[i] == -1.
type Artifact struct {
	Name          string    `json:"name"`
	NFeatures     int       `json:"n_features"`
	FeatureNames  []string  `json:"feature_names,omitempty"`
	ChildrenLeft  []int     `json:"children_left"`
	ChildrenRight []int     `json:"children_right"`
	Feature       []int     `json:"feature"`
	Threshold     []float64 `json:"threshold"`
	Value         []float64 `json:"value"`
}

// DecisionTree is an immutable regression tree. It is safe for concurrent use.
type DecisionTree struct {
	name          string
	nFeatures     int
	childrenLeft  []int
	childrenRight []int
	feature       []int
	threshold     []float64
	value         []float64
}

// Load reads and validates the artifact at path. When expected is non-empty
// and the artifact records feature names, they must match expected exactly.
func Load(path string, expected []string) (*DecisionTree, error) {
	slog.Info("Loading model artifact", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyArtifact)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact %s: %w", path, err)
	}
	if a.Name == "" {
		a.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	tree, err := New(a, expected)
	if err != nil {
		return nil, err
	}

	slog.Info("Model artifact loaded",
		"name", tree.name,
		"nodes", len(tree.value),
		"features", tree.nFeatures,
	)
	return tree, nil
}

// New validates a decoded artifact and builds the tree from it.
func New(a Artifact, expected []string) (*DecisionTree, error) {
	n := len(a.ChildrenLeft)
	if n == 0 {
		return nil, fmt.Errorf("%w: no nodes", ErrInvalidTree)
	}
	if len(a.ChildrenRight) != n || len(a.Feature) != n || len(a.Threshold) != n || len(a.Value) != n {
		return nil, fmt.Errorf("%w: node arrays have different lengths", ErrInvalidTree)
	}
	if a.NFeatures <= 0 {
		return nil, fmt.Errorf("%w: n_features must be positive, got %d", ErrInvalidTree, a.NFeatures)
	}

	if len(a.FeatureNames) > 0 {
		if len(a.FeatureNames) != a.NFeatures {
			return nil, fmt.Errorf("%w: %d feature names for %d features", ErrInvalidTree, len(a.FeatureNames), a.NFeatures)
		}
		if len(expected) > 0 && !slices.Equal(a.FeatureNames, expected) {
			return nil, fmt.Errorf("%w: artifact expects %v, inputs provide %v", ErrFeatureOrder, a.FeatureNames, expected)
		}
	}
	if len(expected) > 0 && a.NFeatures != len(expected) {
		return nil, fmt.Errorf("%w: artifact expects %d features, inputs provide %d", ErrFeatureCount, a.NFeatures, len(expected))
	}

	if err := validateNodes(a); err != nil {
		return nil, err
	}

	return &DecisionTree{
		name:          a.Name,
		nFeatures:     a.NFeatures,
		childrenLeft:  a.ChildrenLeft,
		childrenRight: a.ChildrenRight,
		feature:       a.Feature,
		threshold:     a.Threshold,
		value:         a.Value,
	}, nil
}

// validateNodes checks that every node reachable from the root is visited
// exactly once and that split nodes reference real features.
func validateNodes(a Artifact) error {
	n := len(a.ChildrenLeft)
	seen := make([]bool, n)
	stack := []int{0}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if seen[node] {
			return fmt.Errorf("%w: node %d reachable twice", ErrInvalidTree, node)
		}
		seen[node] = true

		left, right := a.ChildrenLeft[node], a.ChildrenRight[node]
		if left == leaf {
			if right != leaf {
				return fmt.Errorf("%w: node %d has only one child", ErrInvalidTree, node)
			}
			continue
		}
		for _, child := range []int{left, right} {
			if child <= 0 || child >= n {
				return fmt.Errorf("%w: node %d has child %d outside [1,%d)", ErrInvalidTree, node, child, n)
			}
		}
		if f := a.Feature[node]; f < 0 || f >= a.NFeatures {
			return fmt.Errorf("%w: node %d splits on feature %d of %d", ErrInvalidTree, node, f, a.NFeatures)
		}
		stack = append(stack, right, left)
	}
	return nil
}

func (t *DecisionTree) Name() string { return t.name }

// NFeatures is the row width Predict accepts.
func (t *DecisionTree) NFeatures() int { return t.nFeatures }

// Predict walks the tree from the root, going left when the split feature is
// at or below the threshold.
func (t *DecisionTree) Predict(features []float64) (float64, error) {
	if len(features) != t.nFeatures {
		return 0, fmt.Errorf("%w: model expects %d features, got %d", ErrFeatureCount, t.nFeatures, len(features))
	}

	node := 0
	for t.childrenLeft[node] != leaf {
		// Splits were fitted on float32 inputs.
		x := float64(float32(features[t.feature[node]]))
		if x <= t.threshold[node] {
			node = t.childrenLeft[node]
		} else {
			node = t.childrenRight[node]
		}
	}
	return t.value[node], nil
}
