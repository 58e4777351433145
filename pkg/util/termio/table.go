// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package termio

import (
	"fmt"
	"io"
	"strings"
)

// TablePrinter is useful for printing tables to the terminal.  Columns are
// right-aligned by default, and each cell can carry an optional ANSI escape.
type TablePrinter struct {
	widths        []uint
	leftAlign     []bool
	rows          [][]string
	escapes       [][]string
	enableEscapes bool
}

// NewTablePrinter constructs a new table with a given number of columns and
// (initial) rows.  Further rows can be added with AddRow.
func NewTablePrinter(width uint, height uint) *TablePrinter {
	p := &TablePrinter{
		widths:        make([]uint, width),
		leftAlign:     make([]bool, width),
		enableEscapes: true,
	}
	//
	for i := uint(0); i < height; i++ {
		p.AddRow()
	}
	//
	return p
}

// Width returns the number of columns in this table.
func (p *TablePrinter) Width() uint {
	return uint(len(p.widths))
}

// Height returns the height of this table.
func (p *TablePrinter) Height() uint {
	return uint(len(p.rows))
}

// AddRow appends a row to this table, returning its index.  Any values given
// are assigned to the leading columns.
func (p *TablePrinter) AddRow(vals ...string) uint {
	row := uint(len(p.rows))
	//
	p.rows = append(p.rows, make([]string, len(p.widths)))
	p.escapes = append(p.escapes, make([]string, len(p.widths)))
	//
	for i, val := range vals {
		p.Set(uint(i), row, val)
	}
	//
	return row
}

// Set the contents of a given cell in this table
func (p *TablePrinter) Set(col uint, row uint, val string) {
	p.widths[col] = max(p.widths[col], uint(len(val)))
	p.rows[row][col] = val
}

// Get the contents of a given cell in this table
func (p *TablePrinter) Get(col uint, row uint) string {
	return p.rows[row][col]
}

// SetEscape set the colour to use when printing the contents of a given cell
func (p *TablePrinter) SetEscape(col uint, row uint, escape AnsiEscape) {
	p.escapes[row][col] = escape.Build()
}

// LeftAlign determines whether a given column is padded on the right (rather
// than the left).
func (p *TablePrinter) LeftAlign(col uint, enable bool) {
	p.leftAlign[col] = enable
}

// AnsiEscapes enables or disables the use of ANSI escapes (e.g. for showing
// colour).  Disabling escapes is useful in environments that don't support
// escapes as, otherwise, you get a lot of visible excape characters being
// printed.
func (p *TablePrinter) AnsiEscapes(enable bool) {
	p.enableEscapes = enable
}

// SetMaxWidth puts an upper bound on the width of any column.
func (p *TablePrinter) SetMaxWidth(col uint, width uint) {
	p.widths[col] = min(p.widths[col], width)
}

// Print the table to a given writer.  Cells wider than their column are
// truncated with a trailing "..".
func (p *TablePrinter) Print(out io.Writer) error {
	var builder strings.Builder
	//
	for i, row := range p.rows {
		escapes := p.escapes[i]
		//
		for j, col := range row {
			width := int(p.widths[j])
			escape := escapes[j]
			//
			if j != 0 {
				builder.WriteString(" ")
			}
			// Print colour (if applicable)
			if p.enableEscapes && escape != "" {
				builder.WriteString(escape)
			}
			// Print data
			switch {
			case len(col) > width && width > 2:
				fmt.Fprintf(&builder, "%s..", col[0:width-2])
			case p.leftAlign[j] && j+1 < len(row):
				fmt.Fprintf(&builder, "%-*s", width, col)
			case p.leftAlign[j]:
				builder.WriteString(col)
			default:
				fmt.Fprintf(&builder, "%*s", width, col)
			}
			// Cancel colour (if applicable)
			if p.enableEscapes && escape != "" {
				builder.WriteString(ResetAnsiEscape().Build())
			}
		}
		//
		builder.WriteString("\n")
	}
	//
	_, err := io.WriteString(out, builder.String())
	//
	return err
}
