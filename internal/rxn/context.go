package rxn

import (
	"fmt"
	"sort"
)

// PathwayRef locates a named pathway inside a compiled reaction.
type PathwayRef struct {
	Reaction *Reaction
	Index    int
}

// ProbabilityNotice is one entry of the probability report.
type ProbabilityNotice struct {
	Reaction    string  `json:"reaction"`
	Pathway     string  `json:"pathway"`
	Probability float64 `json:"probability"`
	Warning     bool    `json:"warning"`
}

// CompileContext carries everything one compile run needs: notification
// policy, collaborators, the species universe and the pathway-name symbol
// table. A context is used for a single Compile call.
type CompileContext struct {
	Logger     Logger
	Settings   Settings
	Calibrator Calibrator
	RateLoader RateLoader

	// Species is every species of the model, wildcards included.
	Species []*Species
	// PathwayNames maps pathway names to their compiled location.
	PathwayNames map[string]PathwayRef

	// CompileID tags notification events.
	CompileID     string
	Notifications *NotificationManager
	NotifierIDs   []string

	// ProbabilityLimitExceeded is set when some reaction's fixed
	// probabilities sum past 1.
	ProbabilityLimitExceeded bool
	Notices                  []ProbabilityNotice
	Warnings                 []string
}

// NewCompileContext creates a context over the given species with a no-op
// logger and a unit calibration factor.
func NewCompileContext(species []*Species, settings Settings) *CompileContext {
	sorted := append([]*Species(nil), species...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return &CompileContext{
		Logger:       NewNoOpLogger(),
		Settings:     settings,
		Calibrator:   ConstantCalibrator{Factor: 1},
		RateLoader:   FileRateLoader{},
		Species:      sorted,
		PathwayNames: make(map[string]PathwayRef),
	}
}

// recoverable applies policy to a recoverable condition. It returns a fatal
// error only under PolicyError.
func (c *CompileContext) recoverable(policy WarnPolicy, reaction, format string, v ...any) error {
	switch policy {
	case PolicyCope:
		return nil
	case PolicyError:
		return modelErrorf(reaction, format, v...)
	}
	msg := fmt.Sprintf(format, v...)
	if reaction != "" {
		msg = "reaction " + reaction + ": " + msg
	}
	c.Warnings = append(c.Warnings, msg)
	c.Logger.Warnf("%s", msg)
	return nil
}

func (c *CompileContext) notice(n ProbabilityNotice) {
	c.Notices = append(c.Notices, n)
	if n.Warning {
		c.Warnings = append(c.Warnings, "high probability "+n.Pathway)
		c.Logger.Warnf("High probability %.4e for %s", n.Probability, n.Pathway)
	} else {
		c.Logger.Infof("Probability %.4e set for %s", n.Probability, n.Pathway)
	}
	if c.Notifications != nil {
		c.Notifications.Enqueue(NewNotificationEvent(c.CompileID, n), c.NotifierIDs)
	}
}

func (c *CompileContext) raiseProbabilityLimit(rx *Reaction) {
	if c.ProbabilityLimitExceeded {
		return
	}
	c.ProbabilityLimitExceeded = true
	c.Logger.Warnf("Reaction %s: total probability %.4e exceeds 1; some reactions will be missed", rx.Name, rx.MaxFixedP)
}
