package registry

import "testing"

func TestProgramName(t *testing.T) {
	if got := ProgramName(JupiterV6); got != "Jupiter" {
		t.Errorf("expected Jupiter, got %s", got)
	}
	if got := ProgramName("not-a-program"); got != UnknownProgram {
		t.Errorf("expected %s, got %s", UnknownProgram, got)
	}
}

func TestIsInfrastructure(t *testing.T) {
	for _, name := range []string{UnknownProgram, "System Program", "Token Program"} {
		if !IsInfrastructure(name) {
			t.Errorf("expected %s to be infrastructure", name)
		}
	}
	// The ATA program counts as a protocol label, matching how transactions
	// led by it are reported.
	for _, name := range []string{"Jupiter", "Raydium", "Pump.fun", "ATA Program"} {
		if IsInfrastructure(name) {
			t.Errorf("expected %s not to be infrastructure", name)
		}
	}
}
