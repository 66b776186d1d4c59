package seed

import (
	"image"
	"image/color"
	"testing"
)

func solidImage(c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestCalculateContentSeed(t *testing.T) {
	red := solidImage(color.RGBA{R: 255, A: 255})

	a, err := Calculate(red, "", Config{Mode: ModeContent})
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}
	b, err := Calculate(solidImage(color.RGBA{R: 255, A: 255}), "", Config{Mode: ModeContent})
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}
	if a != b {
		t.Errorf("identical images produced different seeds: %d vs %d", a, b)
	}

	c, err := Calculate(solidImage(color.RGBA{G: 255, A: 255}), "", Config{Mode: ModeContent})
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}
	if a == c {
		t.Error("different images produced the same seed")
	}

	if _, err := Calculate(nil, "", Config{Mode: ModeContent}); err == nil {
		t.Error("expected error for nil image")
	}
}

func TestCalculateFilepathSeed(t *testing.T) {
	a, err := Calculate(nil, "a.png", Config{Mode: ModeFilepath})
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}
	b, err := Calculate(nil, "./a.png", Config{Mode: ModeFilepath})
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}
	if a != b {
		t.Errorf("equivalent paths produced different seeds: %d vs %d", a, b)
	}

	if _, err := Calculate(nil, "", Config{Mode: ModeFilepath}); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestCalculateManualAndUnknown(t *testing.T) {
	got, err := Calculate(nil, "", Config{Mode: ModeManual, Value: 42})
	if err != nil || got != 42 {
		t.Errorf("Calculate(manual) = %d, %v; want 42", got, err)
	}

	if _, err := Calculate(nil, "", Config{Mode: "bogus"}); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestNewRandDeterministic(t *testing.T) {
	a, b := NewRand(7), NewRand(7)
	for iter := 0; iter < 10; iter++ {
		if a.Int63() != b.Int63() {
			t.Fatal("NewRand sequences diverged for the same seed")
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "random", want: ModeRandom},
		{in: "Content", want: ModeContent},
		{in: " filepath ", want: ModeFilepath},
		{in: "manual", want: ModeManual},
		{in: "lucky", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}
