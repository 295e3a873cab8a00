package config

import "pdf-summarizer/internal/domain"

// DefaultPresets returns the built-in summarizer presets. The first entry is
// the fallback default.
func DefaultPresets() []domain.Preset {
	return []domain.Preset{
		{
			Name:          "distilbart",
			Description:   "DistilBART fine-tuned on CNN/DailyMail; fast, extract-like summaries.",
			Model:         "sshleifer/distilbart-cnn-12-6",
			MaxInputChars: 3000,
			MinTextChars:  100,
			Options: domain.GenerationOptions{
				MaxLength: 150,
				MinLength: 40,
				DoSample:  domain.Bool(false),
			},
		},
		{
			Name:          "bart-large",
			Description:   "BART large fine-tuned on CNN/DailyMail with beam search.",
			Model:         "facebook/bart-large-cnn",
			MaxInputChars: 4000,
			MinTextChars:  100,
			Options: domain.GenerationOptions{
				MaxLength:     200,
				MinLength:     60,
				LengthPenalty: domain.Float64(2.0),
				NumBeams:      domain.Int(4),
				EarlyStopping: domain.Bool(true),
				DoSample:      domain.Bool(false),
			},
		},
		{
			Name:          "t5",
			Description:   "T5 small with the summarize task prefix and beam search.",
			Model:         "t5-small",
			Prefix:        "summarize: ",
			MaxInputChars: 3000,
			MinTextChars:  100,
			Options: domain.GenerationOptions{
				MaxLength:     150,
				MinLength:     40,
				LengthPenalty: domain.Float64(2.0),
				NumBeams:      domain.Int(4),
				EarlyStopping: domain.Bool(true),
				DoSample:      domain.Bool(false),
			},
		},
	}
}
