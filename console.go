package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ttpr0/go-planner/graph"
	"github.com/ttpr0/go-planner/routing"
)

//**********************************************************
// interactive console
//**********************************************************

type Console struct {
	g   graph.IGraph
	in  *bufio.Scanner
	out io.Writer

	result   routing.Result
	computed bool
}

func NewConsole(g graph.IGraph, in io.Reader, out io.Writer) *Console {
	return &Console{
		g:   g,
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Runs the menu loop until the user exits or the input ends.
func (self *Console) Run() error {
	for {
		fmt.Fprintln(self.out)
		fmt.Fprintln(self.out, "1 - Print points")
		fmt.Fprintln(self.out, "2 - Print routes")
		fmt.Fprintln(self.out, "3 - Compute path")
		fmt.Fprintln(self.out, "4 - Print path")
		fmt.Fprintln(self.out, "0 - Exit")
		option, err := self._ReadOption()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		switch option {
		case 1:
			self.PrintPoints()
		case 2:
			self.PrintRoutes()
		case 3:
			origin, err := self._Prompt("Origin point id: ")
			if err != nil {
				return _IgnoreEOF(err)
			}
			destination, err := self._Prompt("Destination point id: ")
			if err != nil {
				return _IgnoreEOF(err)
			}
			self.ComputePath(origin, destination)
		case 4:
			self.PrintPath()
		case 0:
			return nil
		}
	}
}

func (self *Console) PrintPoints() {
	fmt.Fprintln(self.out, "POINTS:")
	for _, p := range self.g.Points() {
		fmt.Fprintf(self.out, "%v\t%v\t(%v, %v)\n", p.ID, p.Name, p.Coord.Lat(), p.Coord.Lon())
	}
}

func (self *Console) PrintRoutes() {
	fmt.Fprintln(self.out, "ROUTES:")
	for _, r := range self.g.Routes() {
		fmt.Fprintf(self.out, "%v\t%v\t%v - %v\t(%vkm)\n", r.ID, r.Name, r.Endpoints[0], r.Endpoints[1], r.Length)
	}
}

func (self *Console) ComputePath(origin, destination string) {
	result, err := routing.Search(self.g, origin, destination)
	self.result = result
	self.computed = true
	switch {
	case err != nil || !result.IsValid():
		fmt.Fprintf(self.out, "Invalid query: %v\n", err)
	case !result.Found():
		fmt.Fprintln(self.out, "Search finished. No path found")
	default:
		fmt.Fprintln(self.out, "Search finished. Shortest path found")
	}
}

func (self *Console) PrintPath() {
	if !self.computed || !self.result.Found() {
		fmt.Fprintln(self.out, "No path to print")
		return
	}
	for _, step := range self.result.Path {
		point, _ := self.g.GetPoint(step.Point)
		if step.Route == "" {
			fmt.Fprintf(self.out, "From %v\n", point.Name)
			continue
		}
		route, _ := self.g.GetRoute(step.Route)
		fmt.Fprintf(self.out, "Via %v to %v (%vkm)\n", route.Name, point.Name, route.Length)
	}
	fmt.Fprintf(self.out, "TOTAL: %vkm\n", self.result.Length)
	fmt.Fprintf(self.out, "Open nodes: %v closed: %v\n", self.result.OpenCount, self.result.ClosedCount)
}

func (self *Console) _ReadOption() (int, error) {
	for {
		line, err := self._Prompt("OPTION: ")
		if err != nil {
			return 0, err
		}
		option, err := strconv.Atoi(line)
		if err == nil && option >= 0 && option <= 4 {
			return option, nil
		}
	}
}

func (self *Console) _Prompt(text string) (string, error) {
	fmt.Fprint(self.out, text)
	if !self.in.Scan() {
		if err := self.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(self.in.Text()), nil
}

func _IgnoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
