package hapi

// Full gRPC method paths of the consensus-node services and the mirror-node
// streaming service. These strings are part of the external contract.
const (
	MethodCryptoTransfer    = "/proto.CryptoService/cryptoTransfer"
	MethodCryptoGetBalance  = "/proto.CryptoService/cryptoGetBalance"
	MethodGetTxReceipts     = "/proto.CryptoService/getTransactionReceipts"
	MethodCreateFile        = "/proto.FileService/createFile"
	MethodCreateContract    = "/proto.SmartContractService/createContract"
	MethodContractCall      = "/proto.SmartContractService/contractCallMethod"
	MethodContractCallLocal = "/proto.SmartContractService/contractCallLocalMethod"
	MethodCallEthereum      = "/proto.SmartContractService/callEthereum"

	MethodSubscribeTopic = "/com.hedera.mirror.api.proto.ConsensusService/subscribeTopic"
)
