package lang

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Default is the language used when a request doesn't specify one and the
// fallback when a language has no voices for a provider.
const Default = "en"

// Language describes one supported narration language and its default voice
// ids per provider.
type Language struct {
	Code       string              `yaml:"code"`
	Name       string              `yaml:"name"`
	NativeName string              `yaml:"native-name"`
	Voices     map[string][]string `yaml:"voices"`
}

var languages = map[string]Language{
	"en": {
		Code:       "en",
		Name:       "English",
		NativeName: "English",
		Voices: map[string][]string{
			"openai":     {"alloy", "echo", "fable", "nova", "shimmer"},
			"did":        {"en-US-JennyNeural", "en-US-GuyNeural", "en-US-AriaNeural"},
			"heygen":     {"en-US-AriaNeural", "en-US-JennyNeural"},
			"elevenlabs": {"Rachel", "Adam", "Antoni", "Arnold"},
		},
	},
	"es": {
		Code:       "es",
		Name:       "Spanish",
		NativeName: "Español",
		Voices: map[string][]string{
			"openai":     {"nova", "alloy"},
			"did":        {"es-ES-ElviraNeural", "es-MX-DaliaNeural", "es-US-AlonsoNeural"},
			"heygen":     {"es-ES-ElviraNeural", "es-MX-DaliaNeural"},
			"elevenlabs": {"Bella", "Matilda"},
		},
	},
	"fr": {
		Code:       "fr",
		Name:       "French",
		NativeName: "Français",
		Voices: map[string][]string{
			"openai":     {"alloy", "nova"},
			"did":        {"fr-FR-DeniseNeural", "fr-FR-HenriNeural", "fr-CA-SylvieNeural"},
			"heygen":     {"fr-FR-DeniseNeural", "fr-CA-SylvieNeural"},
			"elevenlabs": {"Charlotte", "Serena"},
		},
	},
	"de": {
		Code:       "de",
		Name:       "German",
		NativeName: "Deutsch",
		Voices: map[string][]string{
			"openai":     {"alloy", "fable"},
			"did":        {"de-DE-KatjaNeural", "de-DE-ConradNeural"},
			"heygen":     {"de-DE-KatjaNeural"},
			"elevenlabs": {"Daniel", "Lily"},
		},
	},
	"pt": {
		Code:       "pt",
		Name:       "Portuguese",
		NativeName: "Português",
		Voices: map[string][]string{
			"openai":     {"nova", "echo"},
			"did":        {"pt-BR-FranciscaNeural", "pt-PT-RaquelNeural"},
			"heygen":     {"pt-BR-FranciscaNeural"},
			"elevenlabs": {"Elli", "Callum"},
		},
	},
	"zh": {
		Code:       "zh",
		Name:       "Chinese",
		NativeName: "中文",
		Voices: map[string][]string{
			"openai":     {"alloy", "nova"},
			"did":        {"zh-CN-XiaoxiaoNeural", "zh-CN-YunxiNeural"},
			"heygen":     {"zh-CN-XiaoxiaoNeural"},
			"elevenlabs": {"Grace", "Thomas"},
		},
	},
	"hi": {
		Code:       "hi",
		Name:       "Hindi",
		NativeName: "हिन्दी",
		Voices: map[string][]string{
			"openai": {"alloy", "nova"},
			"did":    {"hi-IN-SwaraNeural", "hi-IN-MadhurNeural"},
			"heygen": {"hi-IN-SwaraNeural"},
		},
	},
	"ar": {
		Code:       "ar",
		Name:       "Arabic",
		NativeName: "العربية",
		Voices: map[string][]string{
			"openai": {"alloy", "echo"},
			"did":    {"ar-SA-ZariyahNeural", "ar-EG-SalmaNeural"},
			"heygen": {"ar-SA-ZariyahNeural"},
		},
	},
	"ja": {
		Code:       "ja",
		Name:       "Japanese",
		NativeName: "日本語",
		Voices: map[string][]string{
			"openai": {"alloy", "shimmer"},
			"did":    {"ja-JP-NanamiNeural", "ja-JP-KeitaNeural"},
			"heygen": {"ja-JP-NanamiNeural"},
		},
	},
	"ko": {
		Code:       "ko",
		Name:       "Korean",
		NativeName: "한국어",
		Voices: map[string][]string{
			"openai": {"alloy", "nova"},
			"did":    {"ko-KR-SunHiNeural", "ko-KR-InJoonNeural"},
			"heygen": {"ko-KR-SunHiNeural"},
		},
	},
}

// VoiceFor returns the default voice id for a language and provider. Unknown
// languages and languages without voices for the provider fall back to the
// default language's list for that provider.
func VoiceFor(code, provider string) string {
	cfg, ok := languages[code]
	if !ok {
		cfg = languages[Default]
	}
	voices := cfg.Voices[provider]
	if len(voices) == 0 {
		voices = languages[Default].Voices[provider]
	}
	if len(voices) == 0 {
		return ""
	}
	return voices[0]
}

// Supported reports whether a language code has a configuration.
func Supported(code string) bool {
	_, ok := languages[code]
	return ok
}

// Name returns the native name of a language, or the code itself when the
// language is unknown.
func Name(code string) string {
	cfg, ok := languages[code]
	if !ok {
		return code
	}
	return cfg.NativeName
}

// Languages returns all supported languages ordered by code.
func Languages() []Language {
	var out []Language
	for _, l := range languages {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Code < out[j].Code
	})
	return out
}

// Load merges language definitions from a YAML file into the built-in table.
// Existing languages are replaced whole, new ones are added.
func Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("lang: couldn't read %s: %w", path, err)
	}
	var custom []Language
	if err := yaml.Unmarshal(b, &custom); err != nil {
		return fmt.Errorf("lang: couldn't unmarshal %s: %w", path, err)
	}
	for _, l := range custom {
		if l.Code == "" {
			return fmt.Errorf("lang: language without code in %s", path)
		}
		languages[l.Code] = l
	}
	return nil
}
