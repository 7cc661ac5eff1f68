package embedding

import (
	"context"
	"fmt"
	"sync"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

// Transformer encoder tensor names. MiniLM exports follow the standard
// HuggingFace layout.
var (
	encoderInputs  = []string{"input_ids", "attention_mask", "token_type_ids"}
	encoderOutputs = []string{"last_hidden_state"}
)

// Encoder embeds sentences with an ONNX transformer model. Vectors are mean
// pooled over the attention mask and L2 normalized, so cosine similarity of
// two outputs is their dot product.
type Encoder struct {
	cfg Config
	tk  *tokenizer.Tokenizer

	mu      sync.Mutex
	session *ort.DynamicAdvancedSession
}

// NewEncoder loads the tokenizer and the model session. The onnxruntime
// environment is initialized once per process and is never torn down here;
// Close only releases the session.
func NewEncoder(cfg Config) (*Encoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.MaxSeqLen <= 0 {
		cfg.MaxSeqLen = defaultMaxSeqLen
	}

	tk, err := pretrained.FromFile(cfg.TokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("loading tokenizer %q: %w", cfg.TokenizerPath, err)
	}
	tk.WithTruncation(&tokenizer.TruncationParams{
		MaxLength: cfg.MaxSeqLen,
		Strategy:  tokenizer.LongestFirst,
	})

	if !ort.IsInitialized() {
		if cfg.LibraryPath != "" {
			ort.SetSharedLibraryPath(cfg.LibraryPath)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("initializing onnxruntime: %w", err)
		}
	}

	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath, encoderInputs, encoderOutputs, nil)
	if err != nil {
		return nil, fmt.Errorf("loading embedding model %q: %w", cfg.ModelPath, err)
	}

	return &Encoder{cfg: cfg, tk: tk, session: session}, nil
}

// EmbedText returns the sentence vector for one text.
func (e *Encoder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if e == nil || e.session == nil {
		return nil, fmt.Errorf("embedding encoder is not initialized")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	encoded, err := e.tk.EncodeSingle(text, true)
	if err != nil {
		return nil, fmt.Errorf("tokenizing %q: %w", text, err)
	}

	ids := toInt64(encoded.GetIds())
	mask := toInt64(encoded.GetAttentionMask())
	types := toInt64(encoded.GetTypeIds())

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.infer(ids, mask, types)
}

// EmbedTexts embeds a batch one text at a time. Inputs of different token
// lengths cannot share a tensor without padding logic, and the pipeline
// batches are small enough that sequential inference is fine.
func (e *Encoder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vec, err := e.EmbedText(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, vec)
	}
	return vectors, nil
}

func (e *Encoder) infer(ids, mask, types []int64) ([]float32, error) {
	shape := ort.NewShape(1, int64(len(ids)))

	idsTensor, err := ort.NewTensor(shape, ids)
	if err != nil {
		return nil, fmt.Errorf("building input tensor: %w", err)
	}
	defer idsTensor.Destroy()

	maskTensor, err := ort.NewTensor(shape, mask)
	if err != nil {
		return nil, fmt.Errorf("building mask tensor: %w", err)
	}
	defer maskTensor.Destroy()

	typesTensor, err := ort.NewTensor(shape, types)
	if err != nil {
		return nil, fmt.Errorf("building type tensor: %w", err)
	}
	defer typesTensor.Destroy()

	outputs := []ort.Value{nil}
	inputs := []ort.Value{idsTensor, maskTensor, typesTensor}
	if err := e.session.Run(inputs, outputs); err != nil {
		return nil, fmt.Errorf("embedding inference: %w", err)
	}

	hidden, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected model output type %T", outputs[0])
	}
	defer hidden.Destroy()

	dims := hidden.GetShape()
	dim := int(dims[len(dims)-1])

	vec := meanPool(hidden.GetData(), mask, dim)
	l2Normalize(vec)
	return vec, nil
}

// ModelID reports the cache identity of the loaded model.
func (e *Encoder) ModelID() string {
	return e.cfg.modelID()
}

// Close releases the model session. The shared onnxruntime environment stays
// up for the rest of the process.
func (e *Encoder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return nil
	}
	err := e.session.Destroy()
	e.session = nil
	return err
}

func toInt64(values []int) []int64 {
	out := make([]int64, len(values))
	for i, v := range values {
		out[i] = int64(v)
	}
	return out
}
