// Command replctl is an interactive shell for driving a replacer.Replacer
// by hand: manual exploration of CLOCK/ARC behavior, for demos and
// debugging. It is not a wire protocol or a database client, in the
// style of tuannm99-novasql/cmd/client's readline-based REPL.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"gopkg.in/yaml.v3"

	"github.com/novadb/pagereplacer/internal/config"
	"github.com/novadb/pagereplacer/internal/replacer"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (optional)")
	policyFlag := flag.String("policy", "clock", "replacement policy: clock or arc")
	capacityFlag := flag.Int("capacity", 16, "replacer capacity")
	flag.Parse()

	policyName := *policyFlag
	capacity := *capacityFlag

	if *configPath != "" {
		cfg, err := config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		policyName = cfg.Replacer.Policy
		capacity = cfg.Replacer.Capacity
	}

	policy, err := replacer.ParsePolicy(policyName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "policy: %v\n", err)
		os.Exit(1)
	}

	r := replacer.New(policy, capacity)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "replctl> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = rl.Close() }()

	fmt.Printf("replacer: %s, capacity %d\n", policy, capacity)
	fmt.Println("type help for a command list")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			fmt.Println("^C")
			continue
		}
		if err != nil {
			fmt.Println()
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !dispatch(r, line) {
			return
		}
	}
}

func dispatch(r replacer.Replacer, line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "quit", "exit":
		return false
	case "help":
		printHelp()
	case "access":
		frame, page, err := parseTwo(args)
		if err != nil {
			fmt.Println(err)
			break
		}
		r.RecordAccess(frame, page)
	case "pin":
		frame, err := parseOne(args)
		if err != nil {
			fmt.Println(err)
			break
		}
		withRecover(func() { r.SetEvictable(frame, false) })
	case "unpin":
		frame, err := parseOne(args)
		if err != nil {
			fmt.Println(err)
			break
		}
		withRecover(func() { r.SetEvictable(frame, true) })
	case "evict":
		frame, ok := r.Evict()
		if !ok {
			fmt.Println("no evictable frame")
			break
		}
		fmt.Printf("evicted frame %d\n", frame)
	case "drop":
		frame, err := parseOne(args)
		if err != nil {
			fmt.Println(err)
			break
		}
		withRecover(func() { r.Remove(frame) })
	case "size":
		fmt.Println(r.Size())
	case "stats":
		printStats(r)
	default:
		fmt.Printf("unknown command: %s\n", cmd)
	}
	return true
}

func parseOne(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected 1 argument, got %d", len(args))
	}
	return strconv.Atoi(args[0])
}

func parseTwo(args []string) (int, int, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("expected 2 arguments, got %d", len(args))
	}
	frame, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, err
	}
	page, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, err
	}
	return frame, page, nil
}

// withRecover turns a fatal contract-violation panic into a printed
// error instead of killing the shell: this REPL is a debugging aid, and
// a typo'd command shouldn't end the session.
func withRecover(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("error: %v\n", r)
		}
	}()
	fn()
}

func printHelp() {
	fmt.Println(`commands:
  access <frame> <page>   record an access
  pin <frame>             withdraw a frame from eviction candidates
  unpin <frame>           admit a frame as an eviction candidate
  evict                   pick a victim frame
  drop <frame>            remove a frame entirely
  size                    print the evictable frame count
  stats                   print a YAML snapshot
  help                    show this help
  quit | exit             quit`)
}

func printStats(r replacer.Replacer) {
	snapshot := map[string]any{"size": r.Size()}
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		fmt.Printf("stats: marshal failed: %v\n", err)
		return
	}
	fmt.Print(string(out))
}
