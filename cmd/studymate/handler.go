package main

import (
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"studymate/internal/config"
	"studymate/internal/rag/interfaces"
	"studymate/internal/rag/pipeline"
	"studymate/internal/rag/schema"
	"studymate/pkg/logger"
)

// HTTPHandler exposes the document pipeline over REST.
type HTTPHandler struct {
	cfg       *config.AppConfig
	processor *pipeline.Processor
	retriever *pipeline.Retriever
	qa        *pipeline.QAPipeline
	log       *logger.Logger

	statsMu   sync.Mutex
	lastStats schema.ProcessingStats
}

// NewHTTPHandler wires the handler. llmClient may be nil, in which case /ask
// returns retrieved context and sources without a generated answer.
func NewHTTPHandler(cfg *config.AppConfig, processor *pipeline.Processor, retriever *pipeline.Retriever,
	llmClient interfaces.LLM, log *logger.Logger) *HTTPHandler {

	h := &HTTPHandler{
		cfg:       cfg,
		processor: processor,
		retriever: retriever,
		log:       log,
	}
	if llmClient != nil {
		h.qa = pipeline.NewQAPipeline(llmClient, logger.New("qa"))
	}
	return h
}

func (h *HTTPHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// uploadDocuments accepts a multipart batch of PDFs, processes them with
// partial-failure semantics, and replaces the served document set.
func (h *HTTPHandler) uploadDocuments(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected multipart form upload"})
		return
	}
	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
		return
	}

	files := make([]schema.NamedFile, 0, len(fileHeaders))
	for _, header := range fileHeaders {
		f, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to open %s", header.Filename)})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to read %s", header.Filename)})
			return
		}
		files = append(files, schema.NamedFile{Name: header.Filename, Data: data})
	}

	chunks, statuses := h.processor.ProcessDocuments(c.Request.Context(), files)
	if err := h.retriever.Ingest(c.Request.Context(), chunks); err != nil {
		h.log.Error(fmt.Sprintf("Ingest failed: %v", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "files": statuses})
		return
	}

	stats := pipeline.ProcessingStats(chunks)
	h.statsMu.Lock()
	h.lastStats = stats
	h.statsMu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"files":      statuses,
		"processing": stats,
		"retriever":  h.retriever.Stats(),
	})
}

type askRequest struct {
	Question string `json:"question" binding:"required"`
	TopK     int    `json:"top_k"`
}

// ask retrieves the chunks most relevant to the question and, when an LLM
// is configured, generates an answer from them. An empty result set is a
// normal outcome, not an error.
func (h *HTTPHandler) ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.TopK <= 0 {
		req.TopK = h.cfg.Retrieval.TopK
	}

	results, err := h.retriever.Query(c.Request.Context(), req.Question, req.TopK)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(results) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"answer":  "",
			"message": "No relevant content found. Upload documents first or try rephrasing the question.",
			"sources": []schema.Source{},
		})
		return
	}

	var answer string
	if h.qa != nil {
		answer, err = h.qa.Run(c.Request.Context(), req.Question, results)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"answer":  answer,
		"context": pipeline.FormatContext(results),
		"sources": pipeline.Sources(results),
		"results": results,
	})
}

// stats reports the retriever state plus the statistics of the last
// processed batch.
func (h *HTTPHandler) stats(c *gin.Context) {
	h.statsMu.Lock()
	lastStats := h.lastStats
	h.statsMu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"retriever":  h.retriever.Stats(),
		"processing": lastStats,
	})
}
