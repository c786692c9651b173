package config

import "time"

const (
	defaultRoot             = "src"
	defaultLocalesDir       = "src/locales"
	defaultSourceLocale     = "en"
	defaultMinFlagLength    = 15
	defaultMinFlagWordCount = 3
	defaultContextWidth     = 120
	defaultOutputFormat     = "text"
	defaultHistoryPath      = ".i18nguard/history.db"
	defaultBusyTimeout      = 5 * time.Second
	defaultDebounce         = 500 * time.Millisecond
	defaultMaxRunsPerSecond = 2
)

var defaultTargetLocales = []string{"de"}

var defaultExcludeDirs = []string{
	"node_modules",
	".next",
	".git",
	"dist",
	"build",
	"out",
	"coverage",
}

var defaultExtensions = []string{".tsx"}

var defaultComponentDirs = []string{"app", "pages", "views", "components"}

// Phrases that have shown up untranslated in past reviews.
var defaultKnownPhrases = []string{
	"Click to see",
	"Learn more",
	"Read more",
	"Try it yourself",
	"How it works",
	"Step by step",
	"Show details",
	"Hide details",
	"Next step",
	"Previous step",
	"Get started",
	"Play animation",
	"Pause animation",
	"Hover over",
	"Drag the slider",
	"Key takeaway",
	"In a nutshell",
	"Why it matters",
}

// Names, titles and terms that stay in English in every locale.
var defaultAllowList = []string{
	"OpenAI",
	"Anthropic",
	"Google DeepMind",
	"Meta AI",
	"Hugging Face",
	"GitHub",
	"arXiv",
	"PyTorch",
	"TensorFlow",
	"JavaScript",
	"TypeScript",
	"Attention Is All You Need",
	"Language Models are Few-Shot Learners",
	"Chain-of-Thought Prompting Elicits Reasoning in Large Language Models",
	"Training language models to follow instructions with human feedback",
	"Scaling Laws for Neural Language Models",
}

var defaultSkipPatterns = []string{
	`^import\s`,
	`^//`,
	`^/?\*`,
	`^\{/\*`,
	`^(export\s+)?(type|interface)\s`,
	`^(export\s+)?(const|let|var)\s+\w+\s*=`,
	`^(if|else|switch|case)\b`,
	`^\}?\s*else\b`,
	`^return\s*\(?$`,
	`^<\w*Icon\b[^>]*/>$`,
	`^</[\w.]*>$`,
	`^<>$|^</>$`,
}

var defaultTranslationMarkers = []string{
	`\{\s*t\.`,
	`\{\s*t\(`,
	`\bt\(`,
	`\bt\[`,
	`\buseTranslations?\(`,
	`\bformatMessage\(`,
	`<Trans\b`,
}
