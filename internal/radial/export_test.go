package radial

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestWriteCSV(t *testing.T) {
	p := Profile{
		{R: 0, Avg: math.NaN(), Samples: 0},
		{R: 5, Avg: 12.5, Samples: 31},
		{R: 10, Avg: 200, Samples: 58},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, p); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	want := "R,avg,samples\n0,,0\n5,12.5,31\n10,200,58\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestReadCSV(t *testing.T) {
	in := "R,avg,samples\n0,,0\n5,12.5,31\n"
	p, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if len(p) != 2 {
		t.Fatalf("length: got %d, want 2", len(p))
	}
	if !math.IsNaN(p[0].Avg) {
		t.Errorf("blank avg: got %v, want NaN", p[0].Avg)
	}
	if p[1].R != 5 || p[1].Avg != 12.5 || p[1].Samples != 31 {
		t.Errorf("row 2: got %+v", p[1])
	}
}

func TestReadCSV_Errors(t *testing.T) {
	inputs := []string{
		"",
		"R,avg,samples\nx,1,2\n",
		"R,avg,samples\n1,abc,2\n",
		"R,avg,samples\n1,2\n",
	}
	for _, in := range inputs {
		if _, err := ReadCSV(strings.NewReader(in)); err == nil {
			t.Errorf("ReadCSV(%q) should fail", in)
		}
	}
}
