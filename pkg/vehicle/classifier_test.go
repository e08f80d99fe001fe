package vehicle

import "testing"

func TestClassifier_Classify(t *testing.T) {
	tests := []struct {
		name      string
		finishTag string
		tag       string
		want      Outcome
	}{
		{"friendly pad", "", "Friendly", Ignored},
		{"default finish", "", "Finish", Success},
		{"untagged terrain", "", "Untagged", Failure},
		{"empty tag", "", "", Failure},
		{"case sensitive friendly", "", "friendly", Failure},
		{"fuel is not whitelisted", "", "Fuel", Failure},
		{"custom finish", "Goal", "Goal", Success},
		{"default finish under custom config", "Goal", "Finish", Failure},
		{"friendly wins over custom finish", "Friendly", "Friendly", Ignored},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classifier{FinishTag: tt.finishTag}
			if got := c.Classify(tt.tag); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestOutcome_String(t *testing.T) {
	names := map[Outcome]string{
		Ignored:    "ignored",
		Failure:    "failure",
		Success:    "success",
		Outcome(9): "unknown",
	}
	for o, want := range names {
		if o.String() != want {
			t.Errorf("Outcome(%d).String() = %q, want %q", int(o), o.String(), want)
		}
	}
}

func TestState_TerminalAndString(t *testing.T) {
	tests := []struct {
		state    State
		name     string
		terminal bool
	}{
		{Alive, "alive", false},
		{Dying, "dying", true},
		{Transcending, "transcending", true},
		{State(7), "unknown", false},
	}
	for _, tt := range tests {
		if tt.state.String() != tt.name {
			t.Errorf("String() = %q, want %q", tt.state.String(), tt.name)
		}
		if tt.state.Terminal() != tt.terminal {
			t.Errorf("%s.Terminal() = %v, want %v", tt.name, tt.state.Terminal(), tt.terminal)
		}
	}
}

func TestResolveLevel(t *testing.T) {
	tests := []struct {
		name    string
		target  LevelSelector
		current int
		total   int
		want    int
	}{
		{"first from middle", FirstLevel, 3, 5, 0},
		{"next from first", NextLevel, 0, 5, 1},
		{"next from last wraps", NextLevel, 4, 5, 0},
		{"next with no levels", NextLevel, 0, 0, 0},
		{"next with negative total", NextLevel, 2, -1, 0},
		{"next from out of range current", NextLevel, 7, 5, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveLevel(tt.target, tt.current, tt.total); got != tt.want {
				t.Errorf("ResolveLevel(%v, %d, %d) = %d, want %d", tt.target, tt.current, tt.total, got, tt.want)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default is valid", func(c *Config) {}, false},
		{"zero thrust is valid", func(c *Config) { c.MainThrustPerSecond = 0; c.RotationThrustPerSecond = 0 }, false},
		{"negative main thrust", func(c *Config) { c.MainThrustPerSecond = -1 }, true},
		{"negative rcs thrust", func(c *Config) { c.RotationThrustPerSecond = -0.5 }, true},
		{"missing engine clip", func(c *Config) { c.Clips.Engine = "" }, true},
		{"missing success emitter", func(c *Config) { c.Emitters.Success = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
