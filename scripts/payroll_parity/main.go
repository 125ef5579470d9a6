// Command payroll_parity replays payroll queries against a candidate deployment,
// checks that repeated calls return byte-identical bodies, and optionally diffs
// the candidate against a baseline deployment.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"
)

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type config struct {
	Targets []target `json:"targets"`
}

type comparison struct {
	Target           target
	CandidateStatus  int
	BaselineStatus   int
	Idempotent       bool
	StatusMatch      bool
	BodyMatch        bool
	Error            error
	DurationCand     time.Duration
	DurationBaseline time.Duration
}

func main() {
	var (
		candidateBase string
		baselineBase  string
		token         string
		targetsPath   string
		timeout       time.Duration
	)

	flag.StringVar(&candidateBase, "candidate", "http://localhost:8080", "Candidate API base URL")
	flag.StringVar(&baselineBase, "baseline", "", "Baseline API base URL (empty skips the cross-deployment diff)")
	flag.StringVar(&token, "token", os.Getenv("PARITY_TOKEN"), "Bearer token with payroll access")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "payroll_parity", "targets.json"), "Path to JSON targets file")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "HTTP client timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	var (
		comparisons  []comparison
		breaking     int
		optionalDiff int
	)

	for _, t := range targets {
		comp := compareTarget(client, candidateBase, baselineBase, token, t)
		failed := comp.Error != nil || !comp.Idempotent
		if !failed && baselineBase != "" {
			failed = !comp.StatusMatch || !comp.BodyMatch
		}
		if failed {
			if t.Critical {
				breaking++
			} else {
				optionalDiff++
			}
		}
		comparisons = append(comparisons, comp)
	}

	printReport(comparisons, baselineBase != "")

	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optionalDiff)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return cfg.Targets, nil
}

func compareTarget(client *http.Client, candidateBase, baselineBase, token string, tgt target) comparison {
	comp := comparison{Target: tgt}

	first, status, dur, err := fetch(client, candidateBase, token, tgt)
	if err != nil {
		comp.Error = fmt.Errorf("candidate request failed: %w", err)
		return comp
	}
	comp.CandidateStatus = status
	comp.DurationCand = dur

	second, _, _, err := fetch(client, candidateBase, token, tgt)
	if err != nil {
		comp.Error = fmt.Errorf("candidate repeat failed: %w", err)
		return comp
	}
	comp.Idempotent = bytes.Equal(stripMeta(first), stripMeta(second))

	if baselineBase == "" {
		return comp
	}
	baseline, status, dur, err := fetch(client, baselineBase, token, tgt)
	if err != nil {
		comp.Error = fmt.Errorf("baseline request failed: %w", err)
		return comp
	}
	comp.BaselineStatus = status
	comp.DurationBaseline = dur
	comp.StatusMatch = comp.CandidateStatus == comp.BaselineStatus
	comp.BodyMatch = bodiesEqual(stripMeta(first), stripMeta(baseline))
	return comp
}

func fetch(client *http.Client, base, token string, tgt target) ([]byte, int, time.Duration, error) {
	if client == nil {
		return nil, 0, 0, errors.New("nil client")
	}
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return nil, 0, 0, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("read body: %w", err)
	}
	return body, resp.StatusCode, time.Since(start), nil
}

// stripMeta drops the envelope's meta block, which carries timings.
func stripMeta(body []byte) []byte {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return bytes.TrimSpace(body)
	}
	delete(envelope, "meta")
	out, err := json.Marshal(envelope)
	if err != nil {
		return bytes.TrimSpace(body)
	}
	return out
}

func bodiesEqual(a, b []byte) bool {
	if bytes.Equal(a, b) {
		return true
	}
	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	return reflect.DeepEqual(aj, bj)
}

func printReport(results []comparison, withBaseline bool) {
	fmt.Println("Payroll Parity Report")
	fmt.Println("=====================")
	for _, res := range results {
		status := "OK"
		switch {
		case res.Error != nil:
			status = "ERROR"
		case !res.Idempotent:
			status = "UNSTABLE"
		case withBaseline && (!res.StatusMatch || !res.BodyMatch):
			status = "DIFF"
		}
		fmt.Printf("[%s] %s %s\n", status, res.Target.Method, res.Target.Path)
		fmt.Printf("  Candidate: %d (%s) | Idempotent: %t\n", res.CandidateStatus, res.DurationCand, res.Idempotent)
		if withBaseline {
			fmt.Printf("  Baseline: %d (%s) | Status match: %t | Body match: %t\n", res.BaselineStatus, res.DurationBaseline, res.StatusMatch, res.BodyMatch)
		}
		if res.Error != nil {
			fmt.Printf("  Error: %v\n", res.Error)
		}
	}
}
