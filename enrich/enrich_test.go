package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCollectFetchesAllPresentSources(t *testing.T) {
	transcript := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("welcome to the product tour\n"))
	}))
	defer transcript.Close()

	profile := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"bio": "We build invoicing tools for freelancers"}`))
	}))
	defer profile.Close()

	extras := Collect(context.Background(), Sources{
		TranscriptURL:    transcript.URL,
		SocialProfileURL: profile.URL,
	})

	if extras.VideoTranscript != "welcome to the product tour" {
		t.Errorf("VideoTranscript = %q", extras.VideoTranscript)
	}
	if extras.SocialBio != "We build invoicing tools for freelancers" {
		t.Errorf("SocialBio = %q", extras.SocialBio)
	}
	if extras.VoiceTranscript != "" {
		t.Errorf("VoiceTranscript should be empty when no voice note is given, got %q", extras.VoiceTranscript)
	}
}

func TestCollectDegradesPerSource(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	working := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"description": "A scheduling assistant"}`))
	}))
	defer working.Close()

	extras := Collect(context.Background(), Sources{
		TranscriptURL:    broken.URL,
		SocialProfileURL: working.URL,
	})

	if extras.VideoTranscript != "" {
		t.Errorf("failed fetch should yield empty transcript, got %q", extras.VideoTranscript)
	}
	if extras.SocialBio != "A scheduling assistant" {
		t.Errorf("SocialBio = %q", extras.SocialBio)
	}
}

func TestCollectNoSources(t *testing.T) {
	extras := Collect(context.Background(), Sources{})
	if !extras.Empty() {
		t.Errorf("expected empty extras, got %+v", extras)
	}
}

func TestSocialBioFieldPreference(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"bio": "", "description": "", "title": "Acme on LinkedIn"}`))
	}))
	defer server.Close()

	bio, err := fetchSocialBio(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("fetchSocialBio returned error: %v", err)
	}
	if bio != "Acme on LinkedIn" {
		t.Errorf("bio = %q", bio)
	}
}
