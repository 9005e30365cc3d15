package images

import "testing"

func TestDigest(t *testing.T) {
	server := Server{Host: "music.local", Port: 6680}

	t.Run("rewrites relative daemon paths", func(t *testing.T) {
		raw := []any{
			"/images/local/abc.jpg",
			"https://i.scdn.co/image/ab67",
			map[string]any{"__model__": "Image", "uri": "/images/local/def.jpg", "width": float64(300)},
		}

		got := Digest(server, raw)
		if len(got) != 3 {
			t.Fatalf("expected 3 images, got %d", len(got))
		}

		if got[0] != "//music.local:6680/images/local/abc.jpg" {
			t.Errorf("string image = %v", got[0])
		}
		if got[1] != "https://i.scdn.co/image/ab67" {
			t.Errorf("absolute image should be untouched, got %v", got[1])
		}

		obj, ok := got[2].(map[string]any)
		if !ok {
			t.Fatalf("expected object, got %T", got[2])
		}
		if obj["url"] != "//music.local:6680/images/local/def.jpg" {
			t.Errorf("object url = %v", obj["url"])
		}
	})

	t.Run("does not modify input objects", func(t *testing.T) {
		original := map[string]any{"uri": "/images/x.jpg"}
		Digest(server, []any{original})

		if _, ok := original["url"]; ok {
			t.Error("input object should not gain a url field")
		}
	})

	t.Run("feeds the normalizer", func(t *testing.T) {
		sizes := Normalize(Digest(server, []any{
			map[string]any{"__model__": "Image", "uri": "/images/big.jpg", "width": float64(1200)},
		}))
		if sizes.Small != "//music.local:6680/images/big.jpg" {
			t.Errorf("expected digested url to propagate, got %+v", sizes)
		}
	})

	t.Run("no host leaves paths alone", func(t *testing.T) {
		got := Digest(Server{}, []any{"/images/a.jpg"})
		if got[0] != "/images/a.jpg" {
			t.Errorf("got %v", got[0])
		}
	})
}
