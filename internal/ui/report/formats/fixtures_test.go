package formats

import (
	"i18nguard/internal/core/ports"
	"i18nguard/internal/engine/hardcoded"
	"i18nguard/internal/engine/parity"
)

func failingKeys() *ports.KeyParityResult {
	return &ports.KeyParityResult{
		Source: "en",
		Reports: []parity.LocaleReport{{
			Source:     "en",
			Target:     "de",
			SourcePath: "/project/src/locales/en.json",
			TargetPath: "/project/src/locales/de.json",
			Report: parity.Report{
				MissingInTarget: []string{"nav.about", "nav.contact"},
				ExtraInTarget:   []string{"legacy"},
				Verified:        5,
			},
		}},
	}
}

func passingKeys() *ports.KeyParityResult {
	return &ports.KeyParityResult{
		Source: "en",
		Reports: []parity.LocaleReport{{
			Source: "en",
			Target: "de",
			Report: parity.Report{MissingInTarget: []string{}, ExtraInTarget: []string{}, Verified: 2},
		}},
	}
}

func failingText() *ports.TextScanResult {
	findings := []hardcoded.Finding{
		{File: "/project/src/app/page.tsx", Line: 4, Column: 11, Content: "Click to see", Context: "<h1>Click to see how it works</h1>", Kind: hardcoded.KindKnownPhrase},
		{File: "/project/src/app/about/page.tsx", Line: 9, Column: 7, Content: "Learn more | today", Context: "<p>Learn more | today</p>", Kind: hardcoded.KindGenericText},
	}
	findings = hardcoded.Dedupe(findings)
	return &ports.TextScanResult{
		Root: "/project/src",
		Result: hardcoded.Result{
			Findings:        findings,
			Groups:          hardcoded.Group(findings),
			FilesDiscovered: 3,
			FilesScanned:    2,
		},
	}
}
