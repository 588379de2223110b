// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/doctrina"
	"github.com/poiesic/doctrina/search"
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

func main() {
	engine, err := doctrina.NewEngine("./policy_db")
	if err != nil {
		panic(err)
	}
	defer engine.Close()

	question := "What are the access to care standards for routine appointments?"
	if len(os.Args) > 1 {
		question = strings.Join(os.Args[1:], " ")
	}

	ctx := context.Background()
	result, err := engine.Ask(ctx, question, search.DefaultTopK)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Found %d evidence items (domain=%s)\n", len(result.Evidence), result.Trace.Domain)
	for _, ev := range result.Evidence {
		fmt.Printf("[%s] '%s' %s [%0.3f]\n", ev.EvidID, ev.Title, ev.Pub, ev.Score)
		fmt.Printf("     %s\n", ev.Excerpt)
	}
}
