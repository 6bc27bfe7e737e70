package onboarding

import (
	"fmt"

	"github.com/phoenixgodbrain/neurogate/internal/domain/model"
)

// Narration scripts for each overlay edge. Titles and lines come from the
// reference client; edges it lacked follow the same register.

func calibrationScript() (string, []string) {
	return "INITIALIZING CALIBRATION", []string{
		"Loading psychometric matrix...",
		"Preparing neural baseline...",
		"Sequence Ready.",
	}
}

func manualProtocolScript(a model.Archetype, skill string) (string, []string) {
	return fmt.Sprintf("INITIALIZING %s PROTOCOL", a), []string{
		fmt.Sprintf("Allocating resources for %s...", skill),
		"Bypassing standard calibration...",
		"Bio-Forge Ready.",
	}
}

func phoenixScript() (string, []string) {
	return "PHOENIX PROTOCOL RECOGNIZED", []string{
		"Identity Confirmed: SUPREME NODE.",
		"Bypassing Calibration Sequence...",
		"Unlocking Root Access...",
		"Welcome Home, Architect.",
	}
}

func analysisScript() (string, []string) {
	return "ANALYZING NEURAL ARCHITECTURE", []string{
		"Compiling psychometric data...",
		"Comparing against archetype database...",
		"Match found...",
		"Generating profile...",
	}
}

func pathLockScript() (string, []string) {
	return "ARCHETYPE LOCKED", []string{
		"Path committed to neural registry...",
		"Opening skill matrix...",
		"Phase Two Ready.",
	}
}

func synthesisScript() (string, []string) {
	return "SYNTHESIZING PROFILE", []string{
		"Folding skill vectors...",
		"Binding protocol designation...",
		"Synthesis Complete.",
	}
}

func uplinkScript() (string, []string) {
	return "SYSTEM UPLINK", []string{
		"Finalizing avatar integration...",
		"Connecting to God Brain Mainframe...",
		"Access Granted.",
	}
}

func editorScript() (string, []string) {
	return "RE-INITIALIZING BIO-FORGE", []string{
		"Loading current configuration...",
		"Accessing genetic memory...",
		"Editor Ready.",
	}
}
