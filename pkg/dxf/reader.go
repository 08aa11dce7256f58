package dxf

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/geotech-assist/dxf-example/pkg/geometry"
)

// ProgressFunc receives parsing progress values from 0.0 to 1.0.
// It is invoked synchronously on the calling goroutine, so a slow
// callback directly stalls parsing.
type ProgressFunc func(progress float64)

// Reader parses ASCII DXF files and extracts 3DFACE entities as triangles.
//
// The file is read into memory as a slice of trimmed lines before any
// scanning starts. DXF code/value pairs are positionally brittle under
// stream seeking (mixed line endings and malformed records make rewind
// arithmetic unreliable), so the parser only ever walks a materialized,
// randomly-indexable line array.
//
// A Reader is not safe for concurrent use; run one parse per Reader.
type Reader struct {
	progress        ProgressFunc
	lastEntityCount int
}

// NewReader creates a new DXF reader
func NewReader() *Reader {
	return &Reader{}
}

// SetProgressCallback registers an optional progress observer.
// The callback receives values from 0.0 to 1.0; the final reported value
// of a parse is always exactly 1.0. A nil callback is allowed.
func (r *Reader) SetProgressCallback(fn ProgressFunc) {
	r.progress = fn
}

// LastEntityCount returns the number of 3DFACE entities successfully
// converted to triangles in the most recent parse.
func (r *Reader) LastEntityCount() int {
	return r.lastEntityCount
}

// Parse reads a DXF file with a throwaway Reader and returns its mesh
func Parse(filename string) (*Mesh, error) {
	return NewReader().ReadFile(filename)
}

// ReadFile reads a DXF file and returns the mesh of all 3DFACE entities
// found inside ENTITIES sections.
//
// It fails with ErrFileNotFound, ErrNotRegularFile or ErrCannotOpen before
// parsing, with ErrParse if the file content cannot be read, and with
// ErrNoEntities if the scan finds zero valid faces. Individual malformed
// 3DFACE entities are dropped silently; only total failure is reported.
func (r *Reader) ReadFile(filename string) (*Mesh, error) {
	info, err := os.Stat(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, filename)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrCannotOpen, filename, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegularFile, filename)
	}

	lines, err := readLines(filename)
	if err != nil {
		return nil, err
	}

	return r.parseLines(filename, lines, info.Size())
}

// readLines materializes the whole file as trimmed lines.
// Trailing spaces, tabs, CR and LF are stripped from the end of each line
// and spaces and tabs from the start, so CRLF and LF files parse alike.
func readLines(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCannotOpen, filename, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r\n")
		line = strings.TrimLeft(line, " \t")
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrParse, filename, err)
	}

	return lines, nil
}

// parseLines scans the line array for SECTION/ENTITIES context and 3DFACE
// entities. Only faces inside an ENTITIES section are honored; a 3DFACE
// outside a recognized section is skipped, which guards against files with
// unexpected structure.
func (r *Reader) parseLines(filename string, lines []string, fileSize int64) (*Mesh, error) {
	mesh := NewMesh()
	mesh.Reserve(3000)
	r.lastEntityCount = 0

	inEntitiesSection := false
	i := 0

	for i < len(lines) {
		if lines[i] == "0" && i+1 < len(lines) {
			entityType := lines[i+1]

			if entityType == "SECTION" && i+3 < len(lines) {
				if lines[i+2] == "2" && lines[i+3] == "ENTITIES" {
					inEntitiesSection = true
					i += 4
					continue
				}
			} else if entityType == "ENDSEC" {
				inEntitiesSection = false
				i += 2
				continue
			} else if inEntitiesSection && entityType == "3DFACE" {
				next := i + 2
				if triangle, ok := parse3DFace(lines, &next); ok {
					mesh.AddTriangle(triangle)
					r.lastEntityCount++

					if r.lastEntityCount%100 == 0 && fileSize > 0 {
						r.reportProgress(float64(next) / float64(len(lines)))
					}
				}
				i = next
				continue
			}
		}
		i++
	}

	// Consumers rely on the last reported value being exactly 1.0,
	// regardless of file size or entity density.
	r.reportProgress(1.0)

	if mesh.IsEmpty() {
		return nil, fmt.Errorf("%w: %s", ErrNoEntities, filename)
	}

	return mesh, nil
}

// parse3DFace consumes code/value line pairs following a 0/3DFACE marker,
// up to but excluding the next "0" line (or end of input), and builds a
// triangle from vertex codes 10/11/12, 20/21/22 and 30/31/32.
//
// A line that fails integer parsing is skipped by one line, tolerating
// stray content without aborting the entity. A value that fails float
// parsing degrades to 0.0 for that coordinate. Codes 13/23/33 (the fourth
// vertex of a quad face) are consumed but not stored: only the triangular
// interpretation is supported.
//
// The index is advanced to wherever scanning stopped. The face is valid
// only if all three vertex slots saw their x coordinate.
func parse3DFace(lines []string, index *int) (geometry.Triangle, bool) {
	var vertices [3]geometry.Vector3
	var hasVertex [3]bool

	i := *index
	for i < len(lines) {
		if lines[i] == "0" {
			break // next entity
		}

		code, err := strconv.Atoi(lines[i])
		if err != nil {
			i++
			continue
		}
		if i+1 >= len(lines) {
			break
		}
		value := lines[i+1]

		switch code {
		case 10, 11, 12:
			v := code - 10
			if x, err := strconv.ParseFloat(value, 64); err == nil {
				vertices[v].X = x
				hasVertex[v] = true
			} else {
				vertices[v].X = 0.0
			}
		case 20, 21, 22:
			v := code - 20
			if y, err := strconv.ParseFloat(value, 64); err == nil {
				vertices[v].Y = y
			} else {
				vertices[v].Y = 0.0
			}
		case 30, 31, 32:
			v := code - 30
			if z, err := strconv.ParseFloat(value, 64); err == nil {
				vertices[v].Z = z
			} else {
				vertices[v].Z = 0.0
			}
		}

		i += 2 // code and value consumed
	}
	*index = i

	if hasVertex[0] && hasVertex[1] && hasVertex[2] {
		return geometry.NewTriangle(vertices[0], vertices[1], vertices[2]), true
	}

	return geometry.Triangle{}, false
}

func (r *Reader) reportProgress(progress float64) {
	if r.progress != nil {
		r.progress(math.Max(0.0, math.Min(1.0, progress)))
	}
}
