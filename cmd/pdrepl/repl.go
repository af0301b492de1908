package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/pushdown"
	"github.com/npillmayer/pushdown/ll1"
	"github.com/npillmayer/pushdown/ll1/pda"
	"github.com/npillmayer/pushdown/ll1/scanner"
)

// main() starts an interactive CLI. Users point it to a grammar file; the
// tool constructs the predictive-parser pipeline once and then accepts
// input strings to parse, plus a handful of inspection commands (see help).
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	grammarfile := flag.String("grammar", "", "Grammar file to load")
	flag.Parse()
	tracer().SetTraceLevel(traceLevel(*tlevel))
	pterm.Info.Println("Welcome to the LL(1)/DPDA sandbox")
	if *grammarfile == "" {
		pterm.Error.Println("no grammar file given; use -grammar <file>")
		os.Exit(1)
	}
	//
	// construct the pipeline: grammar → analysis → table → DPDA
	intp, err := makeInterpreter(*grammarfile)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	input := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if input != "" {
		intp.parse(input)
	}
	//
	repl, err := readline.New("pdrepl> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp.repl = repl
	tracer().Infof("Quit with <ctrl>D")
	intp.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	grammar *ll1.Grammar
	ga      *ll1.LL1Analysis
	table   *ll1.ParseTable
	dpda    *pda.Automaton
	lexer   *scanner.LMAdapter
	repl    *readline.Instance
	tree    *pda.TreeNode // tree of the last accepted input
}

func makeInterpreter(grammarfile string) (*Intp, error) {
	g, err := ll1.LoadGrammarFile(grammarfile)
	if err != nil {
		return nil, err
	}
	ga, err := ll1.Analysis(g)
	if err != nil {
		return nil, err
	}
	table, err := ll1.BuildTable(ga)
	if err != nil {
		return nil, err
	}
	dpda, err := pda.Synthesize(table)
	if err != nil {
		return nil, err
	}
	lexer, err := scanner.FromGrammar(g)
	if err != nil {
		return nil, err
	}
	pterm.Info.Println(fmt.Sprintf("grammar %q ready: table with %d entries", g.Name, table.Size()))
	return &Intp{grammar: g, ga: ga, table: table, dpda: dpda, lexer: lexer}, nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit := intp.Execute(line)
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Execute interprets a REPL line: a command, or an input string to parse.
func (intp *Intp) Execute(line string) bool {
	args := strings.Split(line, " ")
	switch args[0] {
	case "quit":
		return true
	case "help":
		pterm.Info.Println(`commands:
  grammar            display the grammar
  first | follow     display FIRST- and FOLLOW-sets
  table              display the parse table
  dpda               display the automaton's transitions
  tree <file.dot>    export the last parse tree to Graphviz
  parse <input>      parse an input string (as does any other line)`)
	case "grammar":
		pterm.Println(intp.grammar.String())
	case "first":
		intp.showSets("FIRST", func(A pushdown.Symbol) *ll1.SymbolSet { return intp.ga.First(A) })
	case "follow":
		intp.showSets("FOLLOW", func(A pushdown.Symbol) *ll1.SymbolSet { return intp.ga.Follow(A) })
	case "table":
		intp.showTable()
	case "dpda":
		pterm.Println(intp.dpda.String())
	case "tree":
		if intp.tree == nil {
			pterm.Error.Println("no parse tree present; parse an input first")
		} else if len(args) < 2 {
			pterm.Error.Println("usage: tree <file.dot>")
		} else if err := pda.TreeToGraphVizFile(intp.tree, args[1]); err != nil {
			pterm.Error.Println(err.Error())
		} else {
			pterm.Info.Println("exported parse tree to " + args[1])
		}
	case "parse":
		intp.parse(strings.Join(args[1:], " "))
	default:
		intp.parse(line)
	}
	return false
}

// parse tokenizes an input string, runs the automaton and, if the input is
// accepted, reconstructs the parse tree.
func (intp *Intp) parse(input string) {
	intp.tree = nil
	tokens, err := intp.lexer.Tokenize(input)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	accepted, trace := intp.dpda.Accepts(tokens)
	pterm.Println(trace)
	if !accepted {
		pterm.Error.Println("input REJECTED")
		return
	}
	pterm.Info.Println("input ACCEPTED")
	tree, err := intp.dpda.ParseTree(tokens)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	intp.tree = tree
	pterm.Info.Println("frontier: " + strings.Join(tree.Yield(), " "))
}

func (intp *Intp) showSets(title string, setOf func(pushdown.Symbol) *ll1.SymbolSet) {
	data := pterm.TableData{{"non-terminal", title}}
	intp.grammar.EachNonTerminal(func(A pushdown.Symbol) interface{} {
		data = append(data, []string{A.String(), setOf(A).String()})
		return nil
	})
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func (intp *Intp) showTable() {
	columns := append(intp.grammar.Terminals(), pushdown.EndMarker)
	header := []string{""}
	for _, la := range columns {
		header = append(header, la.String())
	}
	data := pterm.TableData{header}
	intp.grammar.EachNonTerminal(func(A pushdown.Symbol) interface{} {
		row := []string{A.String()}
		for _, la := range columns {
			if alpha, ok := intp.table.Production(A, la); ok {
				row = append(row, alpha.String())
			} else {
				row = append(row, "")
			}
		}
		data = append(data, row)
		return nil
	})
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func traceLevel(l string) tracing.TraceLevel {
	switch strings.ToLower(l) {
	case "debug":
		return tracing.LevelDebug
	case "error":
		return tracing.LevelError
	}
	return tracing.LevelInfo
}
