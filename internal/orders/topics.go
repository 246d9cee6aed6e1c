package orders

const (
	TopicOrderPlaced     = "order.placed"
	TopicOrderStatus     = "order.status"
	TopicReviewSubmitted = "review.submitted"
)

// Partition key = order_id, so events of one order stay ordered within a
// topic. Nothing orders order.placed against order.status; consumers rely on
// updated_at instead.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
