package validation

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
)

// ValidationStep represents a single validation step with its status.
type ValidationStep struct {
	Name    string
	Status  StepStatus
	Message string
	Error   error
	Latency time.Duration
}

// StepStatus represents the status of a validation step.
type StepStatus int

const (
	StepPending StepStatus = iota
	StepRunning
	StepPassed
	StepFailed
	StepWarning
	StepSkipped
)

// String returns the string representation of a step status.
func (s StepStatus) String() string {
	switch s {
	case StepPending:
		return "pending"
	case StepRunning:
		return "running"
	case StepPassed:
		return "passed"
	case StepFailed:
		return "failed"
	case StepWarning:
		return "warning"
	case StepSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// SuiteResult represents the complete result of validation suite execution.
type SuiteResult struct {
	Steps       []ValidationStep
	TotalSteps  int
	PassedSteps int
	FailedSteps int
	Warnings    int
	Duration    time.Duration
	Success     bool
}

// GetErrors returns all errors from failed steps.
func (r SuiteResult) GetErrors() []error {
	var errs []error
	for _, step := range r.Steps {
		if step.Status == StepFailed && step.Error != nil {
			errs = append(errs, step.Error)
		}
	}
	return errs
}

// ValidationSuite orchestrates configuration and connectivity checks into
// complete startup validation with progress output. A failed credential or
// endpoint check must stop the application before it accepts requests.
type ValidationSuite struct {
	output               io.Writer
	configValidator      *ConfigValidator
	connectivityChecker  *ConnectivityChecker
	allowSelfSignedCerts bool
	showProgress         bool
	skipConnectivity     bool
}

// NewValidationSuite creates a new ValidationSuite with default settings.
func NewValidationSuite() *ValidationSuite {
	return &ValidationSuite{
		output:              os.Stdout,
		configValidator:     NewConfigValidator(),
		connectivityChecker: NewConnectivityChecker(),
		showProgress:        true,
	}
}

// WithOutput sets the output writer for progress messages.
func (s *ValidationSuite) WithOutput(w io.Writer) *ValidationSuite {
	s.output = w
	return s
}

// WithAllowSelfSignedCerts configures whether to allow self-signed certificates.
func (s *ValidationSuite) WithAllowSelfSignedCerts(allow bool) *ValidationSuite {
	s.allowSelfSignedCerts = allow
	s.connectivityChecker.WithAllowSelfSignedCerts(allow)
	return s
}

// WithShowProgress enables or disables progress output.
func (s *ValidationSuite) WithShowProgress(show bool) *ValidationSuite {
	s.showProgress = show
	return s
}

// WithSkipConnectivity disables the network reachability probe.
// Useful for offline development and tests.
func (s *ValidationSuite) WithSkipConnectivity(skip bool) *ValidationSuite {
	s.skipConnectivity = skip
	return s
}

// WithEnvPath sets a custom path for the .env file.
func (s *ValidationSuite) WithEnvPath(path string) *ValidationSuite {
	s.configValidator.WithEnvPath(path)
	return s
}

// Validate runs all validation checks in sequence with progress output.
func (s *ValidationSuite) Validate() SuiteResult {
	startTime := time.Now()
	steps := make([]ValidationStep, 0, 4)

	if s.showProgress {
		s.printHeader("AI Image Generator Configuration Validation")
	}

	// Step 1: .env file presence. Missing file is only a warning since
	// configuration may come from the real environment.
	step := s.runStep("Environment File", func() (bool, string, error) {
		result := s.configValidator.CheckEnvFile()
		return result.Valid, result.Message, result.Error
	})
	if step.Status == StepFailed {
		step.Status = StepWarning
		step.Error = nil
	}
	steps = append(steps, step)

	// Step 2: endpoint URL shape
	step = s.runStep("Endpoint URL", func() (bool, string, error) {
		result := s.configValidator.CheckEndpointURL()
		return result.Valid, result.Message, result.Error
	})
	steps = append(steps, step)

	// Step 3: API credential presence
	step = s.runStep("API Credential", func() (bool, string, error) {
		result := s.configValidator.CheckCredential()
		return result.Valid, result.Message, result.Error
	})
	steps = append(steps, step)

	// Step 4: endpoint reachability (only if configuration is valid)
	if s.hasAllPassed(steps) && !s.skipConnectivity {
		step = s.runStep("Endpoint Connectivity", func() (bool, string, error) {
			result := s.connectivityChecker.CheckEndpoint()
			msg := result.Message
			if result.Latency > 0 {
				msg = fmt.Sprintf("%s (latency: %v)", msg, result.Latency.Round(time.Millisecond))
			}
			return result.Reachable, msg, result.Error
		})
	} else {
		reason := "Skipped due to configuration errors"
		if s.skipConnectivity {
			reason = "Skipped (connectivity check disabled)"
		}
		step = ValidationStep{
			Name:    "Endpoint Connectivity",
			Status:  StepSkipped,
			Message: reason,
		}
		if s.showProgress {
			s.printStep(step)
		}
	}
	steps = append(steps, step)

	result := s.buildResult(steps, startTime)

	if s.showProgress {
		s.printSummary(result)
	}

	return result
}

// runStep executes a validation step with timing and progress output.
func (s *ValidationSuite) runStep(name string, fn func() (bool, string, error)) ValidationStep {
	step := ValidationStep{Name: name, Status: StepRunning}

	if s.showProgress {
		s.printStepStart(name)
	}

	startTime := time.Now()
	passed, message, err := fn()
	step.Latency = time.Since(startTime)
	step.Message = message
	step.Error = err

	if passed {
		step.Status = StepPassed
	} else {
		step.Status = StepFailed
	}

	if s.showProgress {
		s.printStep(step)
	}

	return step
}

// hasAllPassed checks if all steps so far have passed or only warned.
func (s *ValidationSuite) hasAllPassed(steps []ValidationStep) bool {
	for _, step := range steps {
		if step.Status == StepFailed {
			return false
		}
	}
	return true
}

// buildResult creates a SuiteResult from completed steps.
func (s *ValidationSuite) buildResult(steps []ValidationStep, startTime time.Time) SuiteResult {
	result := SuiteResult{
		Steps:      steps,
		TotalSteps: len(steps),
		Duration:   time.Since(startTime),
		Success:    true,
	}

	for _, step := range steps {
		switch step.Status {
		case StepPassed:
			result.PassedSteps++
		case StepFailed:
			result.FailedSteps++
			result.Success = false
		case StepWarning:
			result.Warnings++
		}
	}

	return result
}

// printHeader prints a validation header.
func (s *ValidationSuite) printHeader(title string) {
	fmt.Fprintln(s.output)
	headerColor := color.New(color.FgCyan, color.Bold)
	headerColor.Fprintf(s.output, "━━━ %s ━━━\n", title)
	fmt.Fprintln(s.output)
}

// printStepStart prints the step name before execution (for real-time feedback).
func (s *ValidationSuite) printStepStart(name string) {
	fmt.Fprintf(s.output, "  ◌ %s...", name)
}

// printStep prints a completed validation step with status indicator.
func (s *ValidationSuite) printStep(step ValidationStep) {
	var icon string
	var clr *color.Color

	switch step.Status {
	case StepPassed:
		icon = "✓"
		clr = color.New(color.FgGreen)
	case StepFailed:
		icon = "✗"
		clr = color.New(color.FgRed)
	case StepWarning:
		icon = "!"
		clr = color.New(color.FgYellow)
	case StepSkipped:
		icon = "○"
		clr = color.New(color.FgHiBlack)
	default:
		icon = "?"
		clr = color.New(color.FgWhite)
	}

	// Clear the "running" line and print result
	fmt.Fprintf(s.output, "\r")
	clr.Fprintf(s.output, "  %s %s", icon, step.Name)

	if step.Message != "" {
		dim := color.New(color.FgHiBlack)
		dim.Fprintf(s.output, " - %s", step.Message)
	}

	fmt.Fprintln(s.output)

	if step.Status == StepFailed && step.Error != nil {
		errColor := color.New(color.FgRed)
		errColor.Fprintf(s.output, "    └─ %s\n", step.Error.Error())
	}
}

// printSummary prints the validation summary.
func (s *ValidationSuite) printSummary(result SuiteResult) {
	fmt.Fprintln(s.output)

	if result.Success {
		successColor := color.New(color.FgGreen, color.Bold)
		successColor.Fprintf(s.output, "━━━ Validation Passed ")
		color.New(color.FgHiBlack).Fprintf(s.output, "(%d/%d checks passed in %v)",
			result.PassedSteps, result.TotalSteps, result.Duration.Round(time.Millisecond))
		successColor.Fprintln(s.output, " ━━━")
	} else {
		failColor := color.New(color.FgRed, color.Bold)
		failColor.Fprintf(s.output, "━━━ Validation Failed ")
		color.New(color.FgHiBlack).Fprintf(s.output, "(%d passed, %d failed)",
			result.PassedSteps, result.FailedSteps)
		failColor.Fprintln(s.output, " ━━━")
	}

	fmt.Fprintln(s.output)
}
