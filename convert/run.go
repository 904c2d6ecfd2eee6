// Package convert drives document slimming from command line.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/ianaindex"

	"slimock/state"
)

// Run is command line action: slims INPUT document into OUTPUT.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input file has been specified")
	}
	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		return errors.New("no output file has been specified")
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}

	// command line takes precedence over configuration
	cp := cmd.String("charset")
	if len(cp) == 0 {
		cp = env.Cfg.Document.Charset
	}
	if len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil || env.CodePage == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcing input character set", zap.String("charset", n))
		}
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		if err == nil {
			log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
		}
	}(time.Now())

	return process(ctx, src, dst, log)
}

// process handles document slimming independently of CLI framework.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	html, err := readDocument(ctx, src, log)
	if err != nil {
		return err
	}
	env.Rpt.Store("input/"+filepath.Base(src), src)

	p, err := NewPipeline(&env.Cfg.Document, env.Rpt, log)
	if err != nil {
		return fmt.Errorf("unable to prepare processing: %w", err)
	}

	out, err := p.Document(ctx, html)
	if err != nil {
		return fmt.Errorf("unable to process document (%s): %w", src, err)
	}

	if err := writeDocument(dst, out); err != nil {
		return err
	}
	log.Info("Wrote optimized HTML", zap.String("file", dst), zap.Int("sizeKB", sizeKB(out)))
	return nil
}

// readDocument reads and decodes input file to UTF-8. Character set is either
// forced or detected from BOM and document meta information.
func readDocument(ctx context.Context, src string, log *zap.Logger) (string, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("unable to read input file: %w", err)
	}

	enc := state.EnvFromContext(ctx).CodePage
	if enc == nil {
		var name string
		enc, name, _ = charset.DetermineEncoding(data, "text/html")
		log.Debug("Input character set detected", zap.String("charset", name))
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("unable to decode input file: %w", err)
	}
	// decoder keeps UTF-8 BOM
	return string(bytes.TrimPrefix(decoded, []byte("\xef\xbb\xbf"))), nil
}

// writeDocument writes result through temporary file, so failure never leaves
// partially written output behind.
func writeDocument(dst, html string) (err error) {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".*")
	if err != nil {
		return fmt.Errorf("unable to create temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, os.Remove(tmp.Name()))
		}
	}()

	if _, err = tmp.WriteString(html); err != nil {
		err = multierr.Append(fmt.Errorf("unable to write output: %w", err), tmp.Close())
		return err
	}
	if err = tmp.Chmod(0644); err != nil {
		err = multierr.Append(fmt.Errorf("unable to set output permissions: %w", err), tmp.Close())
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	if err = os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	return nil
}
