package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

// Sources are the optional user-supplied inputs that can sharpen a
// prompt beyond what the website itself says. All fields may be empty.
type Sources struct {
	TranscriptURL    string `json:"transcriptUrl"`
	SocialProfileURL string `json:"socialProfileUrl"`
	VoiceNoteURL     string `json:"voiceNoteUrl"`
}

// Extras is what the fetches produced. Empty fields mean the source was
// absent or its fetch failed; callers treat both the same way.
type Extras struct {
	VideoTranscript string
	SocialBio       string
	VoiceTranscript string
}

func (e Extras) Empty() bool {
	return e.VideoTranscript == "" && e.SocialBio == "" && e.VoiceTranscript == ""
}

// Collect runs the three fetches concurrently and waits for all of
// them. It never returns an error: each source degrades independently
// to absent data.
func Collect(ctx context.Context, sources Sources) Extras {
	var extras Extras
	var wg sync.WaitGroup

	if sources.TranscriptURL != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			text, err := fetchText(ctx, sources.TranscriptURL)
			if err != nil {
				log.Printf("Transcript fetch failed, continuing without it: %v", err)
				return
			}
			extras.VideoTranscript = text
		}()
	}

	if sources.SocialProfileURL != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bio, err := fetchSocialBio(ctx, sources.SocialProfileURL)
			if err != nil {
				log.Printf("Social profile fetch failed, continuing without it: %v", err)
				return
			}
			extras.SocialBio = bio
		}()
	}

	if sources.VoiceNoteURL != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			text, err := transcribeVoiceNote(ctx, sources.VoiceNoteURL)
			if err != nil {
				log.Printf("Voice note transcription failed, continuing without it: %v", err)
				return
			}
			extras.VoiceTranscript = text
		}()
	}

	wg.Wait()
	return extras
}

func fetchText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

// fetchSocialBio expects an oEmbed-style JSON document and pulls out
// whichever bio-like field is present.
func fetchSocialBio(ctx context.Context, url string) (string, error) {
	raw, err := fetchText(ctx, url)
	if err != nil {
		return "", err
	}
	var profile struct {
		Bio         string `json:"bio"`
		Description string `json:"description"`
		Title       string `json:"title"`
	}
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return "", fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	for _, candidate := range []string{profile.Bio, profile.Description, profile.Title} {
		if candidate != "" {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("profile has no usable bio field")
}

// transcribeVoiceNote downloads the audio and runs it through Whisper.
func transcribeVoiceNote(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return "", fmt.Errorf("OPENAI_API_KEY is not set")
	}

	client := openai.NewClient(option.WithAPIKey(key))
	transcription, err := client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: openai.AudioModelWhisper1,
		File:  resp.Body,
	})
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	return strings.TrimSpace(transcription.Text), nil
}
