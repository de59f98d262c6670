package readfiles

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/notargets/gomom/utils"
)

// From here: https://su2code.github.io/docs_v7/Mesh-File/
type SU2ElementType uint8

const (
	ELType_LINE          SU2ElementType = 3
	ELType_Triangle      SU2ElementType = 5
	ELType_Quadrilateral SU2ElementType = 9
	ELType_Tetrahedral   SU2ElementType = 10
	ELType_Hexahedral    SU2ElementType = 12
	ELType_Prism         SU2ElementType = 13
	ELType_Pyramid       SU2ElementType = 14
)

var ErrFormat = errors.New("malformed SU2 file")

/*
SurfaceMesh is a triangulated surface in 3D. Markers maps each MARKER_TAG label
to the indices of its triangles in Triangles.
*/
type SurfaceMesh struct {
	Vertices  [][3]float64
	Triangles [][3]int
	Markers   map[string][]int
}

func (sm *SurfaceMesh) MarkerNames() (names []string) {
	for name := range sm.Markers {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

func ReadSU2Surface(filename string) (sm *SurfaceMesh, err error) {
	var (
		file *os.File
	)
	if file, err = os.Open(filename); err != nil {
		return
	}
	defer file.Close()
	if sm, err = ParseSU2Surface(file); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	utils.NamedLogger("readfiles").Debugf("read %s: %d vertices, %d triangles, %d markers",
		filename, len(sm.Vertices), len(sm.Triangles), len(sm.Markers))
	return
}

// ParseSU2Surface reads an NDIME= 3 mesh of triangles with optional triangle markers
func ParseSU2Surface(r io.Reader) (sm *SurfaceMesh, err error) {
	var (
		reader = bufio.NewReader(r)
		dim    int
	)
	if dim, err = readNumber(reader, "NDIME"); err != nil {
		return
	}
	if dim != 3 {
		return nil, fmt.Errorf("NDIME= %d, surface meshes need 3: %w", dim, ErrFormat)
	}
	sm = &SurfaceMesh{Markers: make(map[string][]int)}
	if sm.Triangles, err = readElements(reader); err != nil {
		return nil, err
	}
	if sm.Vertices, err = readVertices(reader); err != nil {
		return nil, err
	}
	for k, tri := range sm.Triangles {
		for _, iv := range tri {
			if iv < 0 || iv >= len(sm.Vertices) {
				return nil, fmt.Errorf("element %d refers to vertex %d of %d: %w", k, iv, len(sm.Vertices), ErrFormat)
			}
		}
	}
	if err = readMarkers(reader, sm); err != nil {
		return nil, err
	}
	return
}

func readElements(reader *bufio.Reader) (EToV [][3]int, err error) {
	var (
		K     int
		nType int
		n     int
		line  string
	)
	if K, err = readNumber(reader, "NELEM"); err != nil {
		return
	}
	if K < 0 {
		return nil, fmt.Errorf("NELEM= %d: %w", K, ErrFormat)
	}
	EToV = make([][3]int, K)
	for k := 0; k < K; k++ {
		if line, err = getLine(reader); err != nil {
			return
		}
		if n, err = fmt.Sscanf(line, "%d %d %d %d", &nType, &EToV[k][0], &EToV[k][1], &EToV[k][2]); err != nil || n != 4 {
			return nil, fmt.Errorf("element %d [%s]: %w", k, line, ErrFormat)
		}
		if SU2ElementType(nType) != ELType_Triangle {
			return nil, fmt.Errorf("element %d has type %d, only triangles are supported: %w", k, nType, ErrFormat)
		}
	}
	return
}

func readVertices(reader *bufio.Reader) (verts [][3]float64, err error) {
	var (
		Nv   int
		n    int
		line string
	)
	if Nv, err = readNumber(reader, "NPOIN"); err != nil {
		return
	}
	if Nv < 0 {
		return nil, fmt.Errorf("NPOIN= %d: %w", Nv, ErrFormat)
	}
	verts = make([][3]float64, Nv)
	for i := 0; i < Nv; i++ {
		if line, err = getLine(reader); err != nil {
			return
		}
		if n, err = fmt.Sscanf(line, "%f %f %f", &verts[i][0], &verts[i][1], &verts[i][2]); err != nil || n != 3 {
			return nil, fmt.Errorf("point %d [%s], need x y z: %w", i, line, ErrFormat)
		}
	}
	return
}

func sortedKey(tri [3]int) [3]int {
	s := tri[:]
	sort.Ints(s)
	return tri
}

func readMarkers(reader *bufio.Reader, sm *SurfaceMesh) (err error) {
	var (
		nMarks int
		line   string
	)
	if nMarks, err = readNumber(reader, "NMARK"); err != nil {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		return
	}
	index := make(map[[3]int]int, len(sm.Triangles))
	for k, tri := range sm.Triangles {
		index[sortedKey(tri)] = k
	}
	for m := 0; m < nMarks; m++ {
		var (
			label  string
			nElems int
		)
		if label, err = readLabel(reader, "MARKER_TAG"); err != nil {
			return
		}
		if nElems, err = readNumber(reader, "MARKER_ELEMS"); err != nil {
			return
		}
		for i := 0; i < nElems; i++ {
			var (
				nType int
				tri   [3]int
				n     int
			)
			if line, err = getLine(reader); err != nil {
				return
			}
			if n, err = fmt.Sscanf(line, "%d %d %d %d", &nType, &tri[0], &tri[1], &tri[2]); err != nil || n != 4 {
				return fmt.Errorf("marker %s element %d [%s]: %w", label, i, line, ErrFormat)
			}
			if SU2ElementType(nType) != ELType_Triangle {
				return fmt.Errorf("marker %s element %d has type %d, surface markers hold triangles: %w",
					label, i, nType, ErrFormat)
			}
			k, ok := index[sortedKey(tri)]
			if !ok {
				return fmt.Errorf("marker %s element %d %v is not a mesh element: %w", label, i, tri, ErrFormat)
			}
			sm.Markers[label] = append(sm.Markers[label], k)
		}
	}
	return
}

func getToken(reader *bufio.Reader, keyword string) (token string, err error) {
	var (
		line string
	)
	if line, err = getLineNoComments(reader); err != nil {
		return
	}
	ind := strings.Index(line, "=")
	if ind < 0 {
		return "", fmt.Errorf("badly formed input line [%s], should have an =: %w", line, ErrFormat)
	}
	if key := strings.TrimSpace(line[:ind]); !strings.EqualFold(key, keyword) {
		return "", fmt.Errorf("found %s where %s was expected: %w", key, keyword, ErrFormat)
	}
	token = line[ind+1:]
	return
}

func readLabel(reader *bufio.Reader, keyword string) (label string, err error) {
	var (
		token string
	)
	if token, err = getToken(reader, keyword); err != nil {
		return
	}
	if _, err = fmt.Sscanf(token, "%s", &label); err != nil {
		return "", fmt.Errorf("unable to read label from token: [%s]: %w", token, ErrFormat)
	}
	return
}

func readNumber(reader *bufio.Reader, keyword string) (num int, err error) {
	var (
		token string
	)
	if token, err = getToken(reader, keyword); err != nil {
		return
	}
	if _, err = fmt.Sscanf(token, "%d", &num); err != nil {
		return 0, fmt.Errorf("unable to read number from token: [%s]: %w", token, ErrFormat)
	}
	return
}

// getLineNoComments skips blank lines and lines starting with %
func getLineNoComments(reader *bufio.Reader) (line string, err error) {
	for {
		if line, err = getLine(reader); err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if len(line) != 0 && !strings.HasPrefix(line, "%") {
			return
		}
	}
}

// getLine returns io.EOF only when no more text remains, a final line without a newline is returned
func getLine(reader *bufio.Reader) (line string, err error) {
	line, err = reader.ReadString('\n')
	if err == io.EOF && len(line) != 0 {
		err = nil
	}
	line = strings.TrimRight(line, "\r\n")
	return
}
