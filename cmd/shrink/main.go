// Command shrink trims a JSON array export of articles to a target size
// before it is imported into the store.
package main

import (
	"fmt"
	"os"

	"WebNews/internal/config"
	"WebNews/internal/dataset"
	"WebNews/internal/ioc"
	"WebNews/internal/logger"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/pflag"
)

const titleWidth = 72

func main() {
	in := pflag.String("in", "data.json", "input JSON array")
	out := pflag.String("out", "data_400mb.json", "output file")
	targetMB := pflag.Int64("target-mb", 400, "size limit of the kept records in MiB")
	list := pflag.Bool("list", false, "print the titles of the kept records")
	pflag.Parse()

	l := ioc.InitLogger(config.LogConfig{Level: "info", Development: true})
	defer func() { _ = l.Sync() }()

	if err := run(*in, *out, *targetMB<<20, *list, l); err != nil {
		l.Error("shrink failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(in, out string, limit int64, list bool, l logger.LoggerV1) error {
	src, err := os.Open(in)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(out)
	if err != nil {
		return err
	}
	defer dst.Close()

	l.Info("loading input", logger.String("file", in), logger.Int64("limit_bytes", limit))
	res, err := dataset.Shrink(src, dst, limit)
	if err != nil {
		_ = os.Remove(out)
		return err
	}
	l.Info("done",
		logger.Int("records", res.Total),
		logger.Int("kept", res.Kept),
		logger.String("size", fmt.Sprintf("~%.2f MB", float64(res.Bytes)/(1024*1024))),
		logger.String("out", out))

	if list {
		for i, t := range res.Titles {
			if t == "" {
				t = "(bez názvu)"
			}
			fmt.Printf("%6d  %s\n", i+1, runewidth.Truncate(t, titleWidth, "…"))
		}
	}
	return dst.Sync()
}
