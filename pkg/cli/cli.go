package cli

import (
	"context"
	"flag"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/igolaizola/motivai/pkg/cmd/generate"
	"github.com/igolaizola/motivai/pkg/cmd/migrate"
	"github.com/igolaizola/motivai/pkg/cmd/mix"
	"github.com/igolaizola/motivai/pkg/cmd/setting"
	"github.com/igolaizola/motivai/pkg/cmd/voice"
	"github.com/igolaizola/motivai/pkg/lang"
	"github.com/igolaizola/motivai/pkg/music"
	"github.com/peterbourgon/ff/ffyaml"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
)

func New(version, commit, date string) *ffcli.Command {
	fs := flag.NewFlagSet("motivai", flag.ExitOnError)

	return &ffcli.Command{
		ShortUsage: "motivai [flags] <subcommand>",
		FlagSet:    fs,
		Exec: func(context.Context, []string) error {
			return flag.ErrHelp
		},
		Subcommands: []*ffcli.Command{
			newVersionCommand(version, commit, date),
			newMigrateCommand(),
			newSettingCommand(),
			newGenerateCommand(),
			newMixCommand(),
			newCloneVoiceCommand(),
			newSynthesizeVoiceCommand(),
			newDeleteVoiceCommand(),
			newInspectVoiceCommand(),
			newTracksCommand(),
			newLanguagesCommand(),
		},
	}
}

func newVersionCommand(version, commit, date string) *ffcli.Command {
	return &ffcli.Command{
		Name:       "version",
		ShortUsage: "motivai version",
		ShortHelp:  "print version",
		Exec: func(ctx context.Context, args []string) error {
			v := version
			if v == "" {
				if buildInfo, ok := debug.ReadBuildInfo(); ok {
					v = buildInfo.Main.Version
				}
			}
			if v == "" {
				v = "dev"
			}
			versionFields := []string{v}
			if commit != "" {
				versionFields = append(versionFields, commit)
			}
			if date != "" {
				versionFields = append(versionFields, date)
			}
			fmt.Println(strings.Join(versionFields, " "))
			return nil
		},
	}
}

func newMigrateCommand() *ffcli.Command {
	cmd := "migrate"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &migrate.Config{}

	fs.StringVar(&cfg.DBType, "db-type", "", "db type (sqlite, mysql, postgres)")
	fs.StringVar(&cfg.DBConn, "db-conn", "", "path for sqlite, dsn for mysql or postgres")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("motivai %s [flags] <key> <value data...>", cmd),
		Options: []ff.Option{
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ffyaml.Parser),
			ff.WithEnvVarPrefix("MOTIVAI"),
		},
		ShortHelp: fmt.Sprintf("motivai %s action", cmd),
		FlagSet:   fs,
		Exec: func(ctx context.Context, args []string) error {
			return migrate.Run(ctx, cfg)
		},
	}
}

func newSettingCommand() *ffcli.Command {
	cmd := "setting"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &setting.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.StringVar(&cfg.DBType, "db-type", "", "db type (sqlite, mysql, postgres)")
	fs.StringVar(&cfg.DBConn, "db-conn", "", "path for sqlite, dsn for mysql or postgres")
	fs.StringVar(&cfg.Service, "service", "", "did, heygen, sora, elevenlabs, playht or openai")
	fs.StringVar(&cfg.Account, "account", "default", "account name")
	fs.StringVar(&cfg.Value, "value", "", "value to set")
	fs.StringVar(&cfg.Type, "type", "key", "value type")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("motivai %s [flags] <key> <value data...>", cmd),
		Options: []ff.Option{
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ffyaml.Parser),
			ff.WithEnvVarPrefix("MOTIVAI"),
		},
		ShortHelp: fmt.Sprintf("motivai %s action", cmd),
		FlagSet:   fs,
		Exec: func(ctx context.Context, args []string) error {
			return setting.Run(ctx, cfg)
		},
	}
}

func newGenerateCommand() *ffcli.Command {
	cmd := "generate"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &generate.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.StringVar(&cfg.DBType, "db-type", "", "db type (sqlite, mysql, postgres)")
	fs.StringVar(&cfg.DBConn, "db-conn", "", "path for sqlite, dsn for mysql or postgres")
	fs.StringVar(&cfg.Proxy, "proxy", "", "proxy to use")
	fs.StringVar(&cfg.FSType, "fs-type", "", "file storage type (local, s3, telegram)")
	fs.StringVar(&cfg.FSConn, "fs-conn", "", "file storage connection string")
	fs.StringVar(&cfg.FFmpegBin, "ffmpeg", "", "ffmpeg binary path")
	fs.StringVar(&cfg.Languages, "languages", "", "yaml file with extra language definitions")

	fs.StringVar(&cfg.OpenAIKey, "openai-key", "", "openai api key")
	fs.StringVar(&cfg.OpenAIModel, "openai-model", "", "openai chat model")
	fs.StringVar(&cfg.DIDKey, "did-key", "", "d-id api key")
	fs.StringVar(&cfg.HeygenKey, "heygen-key", "", "heygen api key")
	fs.StringVar(&cfg.SoraKey, "sora-key", "", "sora api key")
	fs.StringVar(&cfg.Primary, "primary", "", "primary video provider")
	fs.StringVar(&cfg.Fallback, "fallback", "", "fallback video provider")

	fs.StringVar(&cfg.User, "user", "", "user id stored with the video")
	fs.StringVar(&cfg.Script, "script", "", "script to narrate, leave empty to generate one")
	fs.StringVar(&cfg.Story, "story", "", "user story used to generate the script")
	fs.StringVar(&cfg.Title, "title", "", "video title")
	fs.StringVar(&cfg.Language, "language", "", "language code")
	fs.StringVar(&cfg.Style, "style", "", "style (professional, casual, energetic, calm)")
	fs.StringVar(&cfg.Voice, "voice", "", "voice id override")
	fs.StringVar(&cfg.Avatar, "avatar", "", "avatar id override")
	fs.IntVar(&cfg.Duration, "duration", 0, "duration in seconds (0 means estimated)")
	fs.StringVar(&cfg.Music, "music", "", "music track id or url, empty for none")
	fs.Float64Var(&cfg.Volume, "volume", 0, "music volume (0 means default)")
	fs.BoolVar(&cfg.Publish, "publish", false, "publish the video to the file storage")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("motivai %s [flags] <key> <value data...>", cmd),
		Options: []ff.Option{
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ffyaml.Parser),
			ff.WithEnvVarPrefix("MOTIVAI"),
		},
		ShortHelp: fmt.Sprintf("motivai %s action", cmd),
		FlagSet:   fs,
		Exec: func(ctx context.Context, args []string) error {
			return generate.Run(ctx, cfg)
		},
	}
}

func newMixCommand() *ffcli.Command {
	cmd := "mix"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &mix.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.StringVar(&cfg.FFmpegBin, "ffmpeg", "", "ffmpeg binary path")
	fs.StringVar(&cfg.Video, "video", "", "video file to mix")
	fs.StringVar(&cfg.Track, "track", "", "music track id or url")
	fs.StringVar(&cfg.Output, "output", "", "output file")
	fs.Float64Var(&cfg.Volume, "volume", 0, "music volume (0 means default)")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("motivai %s [flags] <key> <value data...>", cmd),
		Options: []ff.Option{
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ffyaml.Parser),
			ff.WithEnvVarPrefix("MOTIVAI"),
		},
		ShortHelp: fmt.Sprintf("motivai %s action", cmd),
		FlagSet:   fs,
		Exec: func(ctx context.Context, args []string) error {
			return mix.Run(ctx, cfg)
		},
	}
}

func voiceVendorFlags(fs *flag.FlagSet, v *voice.Vendors) {
	fs.StringVar(&v.Provider, "provider", "", "preferred voice vendor (elevenlabs, playht)")
	fs.StringVar(&v.ElevenLabsKey, "elevenlabs-key", "", "elevenlabs api key")
	fs.StringVar(&v.PlayHTKey, "playht-key", "", "play.ht api key")
	fs.StringVar(&v.PlayHTUser, "playht-user", "", "play.ht user id")
}

func newCloneVoiceCommand() *ffcli.Command {
	cmd := "clone-voice"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &voice.CloneConfig{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.StringVar(&cfg.DBType, "db-type", "", "db type (sqlite, mysql, postgres)")
	fs.StringVar(&cfg.DBConn, "db-conn", "", "path for sqlite, dsn for mysql or postgres")
	fs.StringVar(&cfg.FSType, "fs-type", "", "file storage type (local, s3, telegram)")
	fs.StringVar(&cfg.FSConn, "fs-conn", "", "file storage connection string")
	voiceVendorFlags(fs, &cfg.Vendors)

	fs.StringVar(&cfg.User, "user", "", "user id stored with the voice")
	fs.StringVar(&cfg.Name, "name", "", "voice name")
	fs.StringVar(&cfg.Relationship, "relationship", "", "relationship to the user")
	fs.StringVar(&cfg.Description, "description", "", "voice description")
	fs.StringVar(&cfg.Gender, "gender", "", "voice gender")
	fs.StringVar(&cfg.Language, "language", "", "language code")
	var samples string
	fs.StringVar(&samples, "samples", "", "comma separated list of audio sample files")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("motivai %s [flags] <key> <value data...>", cmd),
		Options: []ff.Option{
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ffyaml.Parser),
			ff.WithEnvVarPrefix("MOTIVAI"),
		},
		ShortHelp: fmt.Sprintf("motivai %s action", cmd),
		FlagSet:   fs,
		Exec: func(ctx context.Context, args []string) error {
			if samples != "" {
				cfg.Samples = strings.Split(samples, ",")
			}
			return voice.RunClone(ctx, cfg)
		},
	}
}

func newSynthesizeVoiceCommand() *ffcli.Command {
	cmd := "synthesize-voice"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &voice.SynthesizeConfig{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.StringVar(&cfg.DBType, "db-type", "", "db type (sqlite, mysql, postgres)")
	fs.StringVar(&cfg.DBConn, "db-conn", "", "path for sqlite, dsn for mysql or postgres")
	voiceVendorFlags(fs, &cfg.Vendors)

	fs.StringVar(&cfg.ID, "id", "", "voice id")
	fs.StringVar(&cfg.Text, "text", "", "text to narrate")
	fs.StringVar(&cfg.Output, "output", "", "output file")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("motivai %s [flags] <key> <value data...>", cmd),
		Options: []ff.Option{
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ffyaml.Parser),
			ff.WithEnvVarPrefix("MOTIVAI"),
		},
		ShortHelp: fmt.Sprintf("motivai %s action", cmd),
		FlagSet:   fs,
		Exec: func(ctx context.Context, args []string) error {
			return voice.RunSynthesize(ctx, cfg)
		},
	}
}

func newDeleteVoiceCommand() *ffcli.Command {
	cmd := "delete-voice"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &voice.DeleteConfig{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.StringVar(&cfg.DBType, "db-type", "", "db type (sqlite, mysql, postgres)")
	fs.StringVar(&cfg.DBConn, "db-conn", "", "path for sqlite, dsn for mysql or postgres")
	voiceVendorFlags(fs, &cfg.Vendors)

	fs.StringVar(&cfg.ID, "id", "", "voice id")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("motivai %s [flags] <key> <value data...>", cmd),
		Options: []ff.Option{
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ffyaml.Parser),
			ff.WithEnvVarPrefix("MOTIVAI"),
		},
		ShortHelp: fmt.Sprintf("motivai %s action", cmd),
		FlagSet:   fs,
		Exec: func(ctx context.Context, args []string) error {
			return voice.RunDelete(ctx, cfg)
		},
	}
}

func newInspectVoiceCommand() *ffcli.Command {
	cmd := "inspect-voice"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &voice.InspectConfig{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.StringVar(&cfg.Sample, "sample", "", "audio sample file")
	fs.StringVar(&cfg.Plot, "plot", "", "write a waveform plot to this file")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("motivai %s [flags] <key> <value data...>", cmd),
		Options: []ff.Option{
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ffyaml.Parser),
			ff.WithEnvVarPrefix("MOTIVAI"),
		},
		ShortHelp: fmt.Sprintf("motivai %s action", cmd),
		FlagSet:   fs,
		Exec: func(ctx context.Context, args []string) error {
			return voice.RunInspect(ctx, cfg)
		},
	}
}

func newTracksCommand() *ffcli.Command {
	return &ffcli.Command{
		Name:       "tracks",
		ShortUsage: "motivai tracks",
		ShortHelp:  "list the music catalog",
		Exec: func(ctx context.Context, args []string) error {
			for _, t := range music.Tracks() {
				fmt.Printf("%s\t%s\t%ds\t%s\n", t.ID, t.Name, t.Duration, t.Mood)
			}
			return nil
		},
	}
}

func newLanguagesCommand() *ffcli.Command {
	return &ffcli.Command{
		Name:       "languages",
		ShortUsage: "motivai languages",
		ShortHelp:  "list the supported languages",
		Exec: func(ctx context.Context, args []string) error {
			for _, l := range lang.Languages() {
				fmt.Printf("%s\t%s\t%s\n", l.Code, l.Name, l.NativeName)
			}
			return nil
		},
	}
}
