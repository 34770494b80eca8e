package main

import (
	"context"
	"go/format"
	"log"
	"os"
	"time"

	"github.com/embrajs/reactivity/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const (
	genericParamCountKey = "count"
	outputKey            = "out"
)

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate the typed CombineN helpers",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  genericParamCountKey,
				Usage: "Highest number of readables a generated Combine accepts",
				Value: 8,
			},
			&cli.StringFlag{
				Name:  outputKey,
				Usage: "File to write",
				Value: "combine_gen.go",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Codegen for combine started !")
	defer func() {
		log.Printf("Codegen for combine finished in %v", time.Since(start))
	}()

	genericParamCount := cmd.Uint(genericParamCountKey)
	out := cmd.String(outputKey)
	log.Printf("Generic param count: %d", genericParamCount)

	contents, err := format.Source([]byte(templates.CombineGen(int(genericParamCount))))
	if err != nil {
		return err
	}
	return os.WriteFile(out, contents, 0644)
}
