package vehicle

// Collision tags with fixed meaning.
const (
	FriendlyTag = "Friendly"
	FinishTag   = "Finish"
)

// Outcome is what a collision means for the vehicle.
type Outcome int

const (
	Ignored Outcome = iota
	Failure
	Success
)

func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case Failure:
		return "failure"
	case Success:
		return "success"
	default:
		return "unknown"
	}
}

// Classifier maps the tag of the other collision participant to an Outcome.
// Anything not explicitly friendly or the finish marker is a Failure.
type Classifier struct {
	FinishTag string
}

// Classify is total and has no side effects.
func (c Classifier) Classify(tag string) Outcome {
	finish := c.FinishTag
	if finish == "" {
		finish = FinishTag
	}

	switch tag {
	case FriendlyTag:
		return Ignored
	case finish:
		return Success
	default:
		return Failure
	}
}
