package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const articleHTML = `<!DOCTYPE html>
<html lang="tr">
<head><title>Kelime haznesi üzerine</title></head>
<body>
<article>
<p>Yabancı dil öğrenmek uzun bir yolculuktur ve kelime haznesi bu yolculuğun
temelidir. Her gün birkaç yeni kelime öğrenmek, zamanla büyük bir birikim
oluşturur. Kelime tekrarı olmadan öğrenilen kelimeler hızla unutulur.</p>
<p>Araştırmalar, aralıklı tekrarın kelime öğrenmede en etkili yöntem olduğunu
gösteriyor. Bir kelime doğru aralıklarla tekrar edildiğinde kalıcı hafızaya
geçer ve uzun süre hatırlanır. Bu yüzden kelime kartları çok kullanışlıdır.</p>
<p>Okuma da kelime öğrenmenin doğal bir yoludur. Gazete yazıları, hikayeler ve
makaleler yeni kelimelerle karşılaşmak için zengin bir kaynak sunar. Bağlam
içinde görülen kelimeler daha kolay akılda kalır.</p>
</article>
</body>
</html>`

func TestFetchArticleOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	article, err := FetchArticle(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if article.TextContent == "" {
		t.Fatal("empty text content")
	}
	if !strings.Contains(article.TextContent, "kelime") {
		t.Fatalf("expected article text, got %q", article.TextContent)
	}
}

func TestFetchArticleStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	if _, err := FetchArticle(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestFetchArticleCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := FetchArticle(ctx, srv.URL); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestFetchArticleFeedsCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	article, err := FetchArticle(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	candidates := ExtractCandidates(article.TextContent, nil, 10)
	if len(candidates) == 0 {
		t.Fatal("expected candidates from article text")
	}
	if candidates[0].Term != "kelime" {
		t.Fatalf("expected kelime as the most frequent term, got %+v", candidates[0])
	}
}
