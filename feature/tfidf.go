package feature

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Model 是在候选事件语料上拟合好的 TF-IDF 向量空间。
//
// 两段式契约：Fit(corpus) 构建词表与 IDF，Transform(query) 只投影、不重拟合。
// 词表只来自事件语料，用户查询中的生僻词直接丢弃——否则每个用户都会
// 污染词表，排名失去可比性。缓存与失效由调用方控制；本身不可变、并发安全。
//
// 口径与常见实现保持一致：
//   - tf = 词符在文档内的出现次数
//   - idf = ln((1+N)/(1+df)) + 1（平滑，避免除零）
//   - 文档/查询向量做 L2 归一化，余弦相似度退化为点积
type Model struct {
	terms []string
	index map[string]int
	idf   []float64
	docs  [][]float64 // 每篇文档的 L2 归一化 tf-idf 向量
}

// Fit 在语料上拟合 TF-IDF 模型。语料可以为空，此时所有查询的相似度为 0。
func Fit(corpus []string) *Model {
	tokenized := make([][]string, len(corpus))
	df := make(map[string]int)
	for i, doc := range corpus {
		tokens := Tokenize(doc)
		tokenized[i] = tokens
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	// 词表按字典序排列，保证向量维度确定、结果可复现
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	index := make(map[string]int, len(terms))
	for i, term := range terms {
		index[term] = i
	}

	n := float64(len(corpus))
	idf := make([]float64, len(terms))
	for i, term := range terms {
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	m := &Model{terms: terms, index: index, idf: idf}
	m.docs = make([][]float64, len(corpus))
	for i, tokens := range tokenized {
		m.docs[i] = m.vectorize(tokens)
	}
	return m
}

// Transform 将查询文本投影到已拟合的向量空间。
// 词表外的词符被忽略；返回向量已 L2 归一化。
func (m *Model) Transform(text string) []float64 {
	return m.vectorize(Tokenize(text))
}

// Similarities 返回查询与每篇语料文档的余弦相似度。
func (m *Model) Similarities(query string) []float64 {
	qv := m.Transform(query)
	sims := make([]float64, len(m.docs))
	for i, dv := range m.docs {
		sims[i] = dot(qv, dv)
	}
	return sims
}

// Terms 返回词表（字典序）。
func (m *Model) Terms() []string { return m.terms }

// DocCount 返回语料文档数。
func (m *Model) DocCount() int { return len(m.docs) }

func (m *Model) vectorize(tokens []string) []float64 {
	vec := make([]float64, len(m.terms))
	for _, tok := range tokens {
		if i, ok := m.index[tok]; ok {
			vec[i] += m.idf[i]
		}
	}
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Tokenize 切词：小写化、按非字母数字切分、丢弃单字符词符与停用词。
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 || IsStopword(f) {
			continue
		}
		out = append(out, f)
	}
	return out
}
