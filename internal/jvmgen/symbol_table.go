package jvmgen

// 符号表初始桶数与装载因子
const (
	symbolTableBuckets = 256
	symbolTableLoad    = 0.75
)

// symbolTable 以链地址法组织的哈希表，桶数按 2n+1 扩容
type symbolTable struct {
	buckets   []*item
	threshold int
	rehashes  int
}

func newSymbolTable() *symbolTable {
	return &symbolTable{
		buckets:   make([]*item, symbolTableBuckets),
		threshold: int(symbolTableLoad * symbolTableBuckets),
	}
}

// get 查找与 key 相同的项
func (t *symbolTable) get(key *item) *item {
	i := t.buckets[int(key.hash)%len(t.buckets)]
	for i != nil && (i.typ != key.typ || !key.isEqualTo(i)) {
		i = i.chain
	}
	return i
}

// put 插入新项，size 是当前已占用的条目数，超过阈值时扩容
func (t *symbolTable) put(i *item, size int) {
	if size > t.threshold {
		t.rehash()
	}
	idx := int(i.hash) % len(t.buckets)
	i.chain = t.buckets[idx]
	t.buckets[idx] = i
}

func (t *symbolTable) rehash() {
	old := t.buckets
	nl := len(old)*2 + 1
	buckets := make([]*item, nl)
	for _, head := range old {
		for j := head; j != nil; {
			next := j.chain
			idx := int(j.hash) % nl
			j.chain = buckets[idx]
			buckets[idx] = j
			j = next
		}
	}
	t.buckets = buckets
	t.threshold = int(float64(nl) * symbolTableLoad)
	t.rehashes++
}

// each 遍历所有项
func (t *symbolTable) each(f func(*item)) {
	for _, head := range t.buckets {
		for j := head; j != nil; j = j.chain {
			f(j)
		}
	}
}
