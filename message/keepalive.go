package message

// 4.4.  KEEPALIVE Message Format
//    BGP does not use any TCP-based, keep-alive mechanism to determine
//    if peers are reachable. Instead, KEEPALIVE messages are exchanged
//    between peers often enough not to cause the Hold Timer to expire.
//    A reasonable maximum time between KEEPALIVE messages would be one
//    third of the Hold Time interval.
//
//    A KEEPALIVE message consists of only the message header and has a
//    length of 19 octets.

// EncodeKeepalive returns a complete KEEPALIVE message (header only).
func EncodeKeepalive() []byte {
	return EncodeHeader(TypeKeepalive, nil)
}
