//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/specvital/stubgen/pkg/generator"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: go run scripts/scan.go <path>\n")
		os.Exit(1)
	}

	path := os.Args[1]

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := generator.New(generator.WithDryRun(true)).GenerateAll(ctx, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scan error: %v\n", err)
		os.Exit(1)
	}

	output := map[string]interface{}{
		"filesScanned":   result.Stats.FilesScanned,
		"filesGenerated": result.Stats.FilesGenerated,
		"filesSkipped":   result.Stats.FilesSkipped,
		"filesFailed":    result.Stats.FilesFailed,
		"exportCount":    countExports(result),
		"duration":       result.Stats.Duration.String(),
		"frameworks":     result.Stats.FrameworkDist,
	}
	json.NewEncoder(os.Stdout).Encode(output)
}

func countExports(result *generator.BatchResult) int {
	count := 0
	for _, file := range result.Generated {
		count += len(file.Surface.NamedExports)
		if file.Surface.HasDefaultExport {
			count++
		}
	}
	return count
}
