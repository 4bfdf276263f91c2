// This is the main-driver for our compiler.

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ahawley/lmcc/assembler"
	"github.com/ahawley/lmcc/compiler"
	"github.com/ahawley/lmcc/config"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const prompt = "lmcc> "

const banner = `lmcc - a Little Man Computer compiler
Type a program, one line at a time.
  .run    compile and print the assembly built so far
  .reset  discard the program built so far
  .exit   quit
`

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

func main() {
	debug := flag.Bool("debug", false, "Insert debug commentary in the generated assembly.")
	assemble := flag.Bool("assemble", false, "Also assemble the generated program into an LMC memory image.")
	repl := flag.Bool("repl", false, "Start an interactive REPL instead of compiling a file.")
	noColor := flag.Bool("no-color", false, "Disable colored output.")
	configPath := flag.String("config", "", "Path to a TOML config file (defaults to the platform config directory).")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFrom(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Printf("Error loading config: %s\n", err)
		os.Exit(1)
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) || *noColor || !cfg.CLI.Color {
		color.NoColor = true
	}

	if *repl {
		runRepl(cfg, *debug)
		return
	}

	if len(flag.Args()) != 1 {
		fmt.Println("Usage: lmcc [flags] <source-file>")
		os.Exit(1)
	}

	src, err := os.ReadFile(flag.Args()[0])
	if err != nil {
		fmt.Printf("Error reading %s: %s\n", flag.Args()[0], err)
		os.Exit(1)
	}

	out, warnings, err := compile(cfg, string(src), *debug || cfg.CLI.Debug)
	if err != nil {
		redColor.Printf("Error compiling: %s\n", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		yellowColor.Println(w)
	}

	if *assemble {
		printImage(out)
		return
	}

	fmt.Print(out)
}

// compile runs one program through the compiler, returning the
// generated assembly, any lexer warnings, and an error if compilation
// failed. There is no partial output on failure.
func compile(cfg *config.Config, src string, debug bool) (string, []string, error) {
	c := compiler.New(src)
	c.SetDebug(debug)
	c.SetWarnBound(cfg.Lexer.WarnBound)

	out, err := c.Compile()
	if err != nil {
		return "", nil, err
	}
	return out, c.Warnings(), nil
}

// printImage assembles the generated program and prints its memory
// image, one address per line, skipping trailing all-zero words.
func printImage(asm string) {
	image, err := assembler.Assemble(asm)
	if err != nil {
		redColor.Printf("Error assembling: %s\n", err)
		os.Exit(1)
	}

	last := 0
	for i, w := range image {
		if w != 0 {
			last = i
		}
	}
	for i := 0; i <= last; i++ {
		fmt.Printf("%02d %03d\n", i, image[i])
	}
}

// runRepl starts an interactive session: the user builds up a program
// line by line, and ".run" compiles and prints whatever has been
// entered so far.
func runRepl(cfg *config.Config, debug bool) {
	cyanColor.Print(banner)

	rl, err := readline.New(prompt)
	if err != nil {
		fmt.Printf("Error starting readline: %s\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	var lines []string

	for {
		line, err := rl.Readline()
		if err != nil {
			fmt.Println("Good bye!")
			return
		}

		switch strings.TrimSpace(line) {
		case ".exit":
			fmt.Println("Good bye!")
			return

		case ".reset":
			lines = nil
			continue

		case ".run":
			out, warnings, err := compile(cfg, strings.Join(lines, "\n"), debug || cfg.CLI.Debug)
			if err != nil {
				redColor.Printf("Error compiling: %s\n", err)
				continue
			}
			for _, w := range warnings {
				yellowColor.Println(w)
			}
			cyanColor.Print(out)
			continue

		default:
			rl.SaveHistory(line)
			lines = append(lines, line)
		}
	}
}
