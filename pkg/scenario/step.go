// Package scenario handles parsing and execution of YAML scenario
// files that drive the adapter's action vocabulary.
package scenario

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/devicelab-dev/detox-adapter/pkg/locator"
)

// StepType represents the type of step.
type StepType string

// Step type constants.
const (
	// Interaction
	StepTap          StepType = "tap"
	StepMultiTap     StepType = "multiTap"
	StepLongPress    StepType = "longPress"
	StepTapByLabel   StepType = "tapByLabel"
	StepFillField    StepType = "fillField"
	StepAppendField  StepType = "appendField"
	StepClearField   StepType = "clearField"
	StepSwipe        StepType = "swipe"
	StepScrollToEdge StepType = "scrollToEdge"
	StepWait         StepType = "wait"

	// Assertions
	StepSee                  StepType = "see"
	StepDontSee              StepType = "dontSee"
	StepSeeElement           StepType = "seeElement"
	StepDontSeeElement       StepType = "dontSeeElement"
	StepSeeElementExists     StepType = "seeElementExists"
	StepDontSeeElementExists StepType = "dontSeeElementExists"

	// Waits
	StepWaitForElement        StepType = "waitForElement"
	StepWaitForElementVisible StepType = "waitForElementVisible"
	StepWaitToHide            StepType = "waitToHide"

	// App & device
	StepLaunchApp      StepType = "launchApp"
	StepRelaunchApp    StepType = "relaunchApp"
	StepTerminateApp   StepType = "terminateApp"
	StepInstallApp     StepType = "installApp"
	StepRemoveApp      StepType = "removeApp"
	StepShake          StepType = "shake"
	StepBack           StepType = "back"
	StepSetOrientation StepType = "setOrientation"

	// Flow control
	StepOnPlatform StepType = "onPlatform"
)

// bareSteps are the steps that may be written as a plain scalar without
// arguments.
var bareSteps = map[StepType]bool{
	StepLaunchApp:    true,
	StepRelaunchApp:  true,
	StepTerminateApp: true,
	StepInstallApp:   true,
	StepRemoveApp:    true,
	StepShake:        true,
	StepBack:         true,
}

// Step is one scenario step. Exactly one step type is set per entry;
// which argument fields are meaningful depends on the type.
type Step struct {
	Type StepType

	Target  locator.Description // Element the step acts on
	Context locator.Description // Optional descendant scope

	Text        string // see/dontSee text, tapByLabel label
	Value       string // fillField/appendField value
	Times       int    // multiTap count
	Direction   string // swipe direction
	Speed       string // swipe speed
	Edge        string // scrollToEdge edge
	Seconds     int    // wait/waitFor* duration in seconds
	Orientation string // setOrientation value

	Platform string // onPlatform target
	Steps    []Step // onPlatform nested steps
}

// stepArgs is the mapping form of a step's arguments.
type stepArgs struct {
	Element locator.Description `yaml:"element"`
	Context locator.Description `yaml:"context"`

	Field locator.Description `yaml:"field"`
	Text  string              `yaml:"text"`
	Label string              `yaml:"label"`
	Value string              `yaml:"value"`

	Times     int    `yaml:"times"`
	Direction string `yaml:"direction"`
	Speed     string `yaml:"speed"`
	Edge      string `yaml:"edge"`
	Timeout   int    `yaml:"timeout"`

	Platform string `yaml:"platform"`
	Steps    []Step `yaml:"steps"`
}

// UnmarshalYAML decodes a step from a bare scalar (`- back`) or a
// one-key mapping (`- tap: "#save"`).
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		st := StepType(node.Value)
		if !bareSteps[st] {
			return fmt.Errorf("line %d: step %q requires arguments", node.Line, node.Value)
		}
		s.Type = st
		return nil
	}

	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return fmt.Errorf("line %d: step must be a scalar or a single-key mapping", node.Line)
	}

	s.Type = StepType(node.Content[0].Value)
	return s.decodeArgs(node.Content[1])
}

func (s *Step) decodeArgs(value *yaml.Node) error {
	switch s.Type {
	case StepTap, StepLongPress, StepClearField,
		StepSeeElement, StepDontSeeElement,
		StepSeeElementExists, StepDontSeeElementExists:
		return s.decodeTarget(value)

	case StepMultiTap:
		args, err := decodeStepArgs(value)
		if err != nil {
			return err
		}
		s.Target = args.Element
		s.Context = args.Context
		s.Times = args.Times
		if s.Times == 0 {
			s.Times = 2
		}
		return nil

	case StepTapByLabel:
		if value.Kind == yaml.ScalarNode {
			s.Text = value.Value
			return nil
		}
		args, err := decodeStepArgs(value)
		if err != nil {
			return err
		}
		s.Text = args.Label
		s.Context = args.Context
		return nil

	case StepFillField, StepAppendField:
		args, err := decodeStepArgs(value)
		if err != nil {
			return err
		}
		s.Target = args.Field
		if s.Target.IsZero() {
			s.Target = args.Element
		}
		s.Value = args.Value
		return nil

	case StepSee, StepDontSee:
		if value.Kind == yaml.ScalarNode {
			s.Text = value.Value
			return nil
		}
		args, err := decodeStepArgs(value)
		if err != nil {
			return err
		}
		s.Text = args.Text
		s.Context = args.Context
		return nil

	case StepWaitForElement, StepWaitForElementVisible, StepWaitToHide:
		args, err := decodeStepArgs(value)
		if err != nil {
			return err
		}
		s.Target = args.Element
		s.Seconds = args.Timeout
		if s.Seconds == 0 {
			s.Seconds = 5
		}
		return nil

	case StepSwipe:
		args, err := decodeStepArgs(value)
		if err != nil {
			return err
		}
		s.Target = args.Element
		s.Direction = args.Direction
		s.Speed = args.Speed
		return nil

	case StepScrollToEdge:
		args, err := decodeStepArgs(value)
		if err != nil {
			return err
		}
		s.Target = args.Element
		s.Edge = args.Edge
		return nil

	case StepWait:
		return value.Decode(&s.Seconds)

	case StepSetOrientation:
		return value.Decode(&s.Orientation)

	case StepOnPlatform:
		args, err := decodeStepArgs(value)
		if err != nil {
			return err
		}
		s.Platform = args.Platform
		s.Steps = args.Steps
		if s.Platform == "" {
			return fmt.Errorf("line %d: onPlatform requires a platform", value.Line)
		}
		return nil

	case StepLaunchApp, StepRelaunchApp, StepTerminateApp,
		StepInstallApp, StepRemoveApp, StepShake, StepBack:
		// Arguments are tolerated and ignored for bare steps written in
		// mapping form.
		return nil

	default:
		return fmt.Errorf("line %d: unknown step type %q", value.Line, s.Type)
	}
}

// decodeTarget accepts either a locator description directly, or an
// args mapping with element/context keys. A mapping containing an
// `element` key is the args form; anything else is a description.
func (s *Step) decodeTarget(value *yaml.Node) error {
	if value.Kind == yaml.MappingNode && hasKey(value, "element") {
		args, err := decodeStepArgs(value)
		if err != nil {
			return err
		}
		s.Target = args.Element
		s.Context = args.Context
		return nil
	}
	return value.Decode(&s.Target)
}

func decodeStepArgs(value *yaml.Node) (stepArgs, error) {
	var args stepArgs
	if err := value.Decode(&args); err != nil {
		return stepArgs{}, err
	}
	return args, nil
}

func hasKey(node *yaml.Node, key string) bool {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}

// Describe returns a human-readable description of the step.
func (s Step) Describe() string {
	return string(s.Type)
}
