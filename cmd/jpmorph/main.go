// Command jpmorph tokenizes Japanese text from the command line. Each
// argument, or each stdin line when no arguments are given, is analyzed on
// its own. With -reading it enumerates segmentations matching a reading
// instead of printing the single best one.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"
	"github.com/ilyakaznacheev/cleanenv"

	"jpmorph"
	"jpmorph/logger"
)

type appConfig struct {
	Dict      string `env:"JPMORPH_DICT" env-default:"ipa"`
	Shrink    bool   `env:"JPMORPH_DICT_SHRINK" env-default:"false"`
	Bridge    bool   `env:"JPMORPH_WHITESPACE_BRIDGE" env-default:"false"`
	LogLevel  string `env:"JPMORPH_LOG_LEVEL" env-default:"info"`
	LogFormat string `env:"JPMORPH_LOG_FORMAT" env-default:"text"`
}

type appFlags struct {
	reading    string
	maxResults int
	minTokens  int
	asJSON     bool
	dump       bool
	compare    bool
	udicts     stringList
}

// stringList collects repeated occurrences of a flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error("jpmorph failed", "error", err.Error())
		os.Exit(1)
	}
}

func run() error {
	var fl appFlags
	flag.StringVar(&fl.reading, "reading", "", "enumerate segmentations whose readings match this string")
	flag.IntVar(&fl.maxResults, "max", jpmorph.DefaultCandidateConfig().MaxResults, "maximum number of reading candidates")
	flag.IntVar(&fl.minTokens, "min", jpmorph.DefaultCandidateConfig().MinTokens, "minimum tokens per reading candidate")
	flag.BoolVar(&fl.asJSON, "json", false, "print results as JSON")
	flag.BoolVar(&fl.dump, "dump", false, "print the lattice instead of tokens")
	flag.BoolVar(&fl.compare, "compare", false, "also print the kagome reference segmentation")
	flag.Var(&fl.udicts, "udict", "user dictionary CSV path, repeatable")
	flag.Parse()

	var cfg appConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return fmt.Errorf("read env: %w", err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	opts := []jpmorph.Option{jpmorph.WithWhitespaceBridge(cfg.Bridge)}
	switch strings.ToLower(cfg.Dict) {
	case "", "ipa":
	case "uni":
		opts = append(opts, jpmorph.WithUniDict())
	default:
		return fmt.Errorf("unknown dictionary %q, want ipa or uni", cfg.Dict)
	}
	if cfg.Shrink {
		opts = append(opts, jpmorph.WithShrinkDict())
	}
	for _, path := range fl.udicts {
		opts = append(opts, jpmorph.WithUserDictFile(path))
	}

	log.Debug("loading dictionary", "dict", cfg.Dict, "shrink", cfg.Shrink, "user_dicts", len(fl.udicts))
	a, err := jpmorph.New(opts...)
	if err != nil {
		return err
	}

	var ref *tokenizer.Tokenizer
	if fl.compare {
		ref, err = referenceTokenizer(cfg.Dict)
		if err != nil {
			return fmt.Errorf("reference tokenizer: %w", err)
		}
	}

	ctx := context.Background()
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if flag.NArg() > 0 {
		for _, text := range flag.Args() {
			if err := process(ctx, out, a, ref, &fl, text); err != nil {
				return err
			}
		}
		return nil
	}

	sc := bufio.NewScanner(os.Stdin)
	sc.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for sc.Scan() {
		if err := process(ctx, out, a, ref, &fl, sc.Text()); err != nil {
			return err
		}
	}
	return sc.Err()
}

func process(ctx context.Context, out *bufio.Writer, a *jpmorph.Analyzer, ref *tokenizer.Tokenizer, fl *appFlags, text string) error {
	if text == "" {
		return nil
	}
	switch {
	case fl.dump:
		return a.DumpLattice(out, text)
	case fl.reading != "":
		return printCandidates(ctx, out, a, fl, text)
	default:
		return printTokens(ctx, out, a, ref, fl, text)
	}
}

func printTokens(ctx context.Context, out *bufio.Writer, a *jpmorph.Analyzer, ref *tokenizer.Tokenizer, fl *appFlags, text string) error {
	tokens, err := a.Tokenize(ctx, text)
	if err != nil {
		return err
	}
	if fl.asJSON {
		return printJSON(out, tokens)
	}
	for _, t := range tokens {
		fmt.Fprintf(out, "%s\t%s,%s\n", t.Text, strings.Join(t.POS, ","), t.Reading)
	}
	fmt.Fprintln(out, "EOS")
	if ref != nil {
		fmt.Fprintf(out, "kagome:\t%s\n", strings.Join(surfaces(ref.Tokenize(text)), "/"))
	}
	return nil
}

func printCandidates(ctx context.Context, out *bufio.Writer, a *jpmorph.Analyzer, fl *appFlags, text string) error {
	cfg := jpmorph.CandidateConfig{MaxResults: fl.maxResults, MinTokens: fl.minTokens}
	cands, err := a.ReadingCandidates(ctx, text, fl.reading, cfg)
	if err != nil {
		return err
	}
	if fl.asJSON {
		return printJSON(out, cands)
	}
	for i, c := range cands {
		parts := make([]string, len(c.Tokens))
		for j, t := range c.Tokens {
			parts[j] = t.Text + "/" + t.Reading
		}
		fmt.Fprintf(out, "#%d cost=%d %s\n", i, c.TotalCost, strings.Join(parts, " "))
	}
	fmt.Fprintln(out, "EOS")
	return nil
}

func printJSON(out *bufio.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(b))
	return nil
}

func surfaces(toks []tokenizer.Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Surface
	}
	return out
}

func referenceTokenizer(dictName string) (*tokenizer.Tokenizer, error) {
	var d *dict.Dict
	if strings.EqualFold(dictName, "uni") {
		d = uni.Dict()
	} else {
		d = ipa.Dict()
	}
	return tokenizer.New(d, tokenizer.OmitBosEos())
}
